// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package field

// BABYBEAR is the 31bit BabyBear field (p = 15·2^27 + 1).  This is the
// default field.
var BABYBEAR = Config{"BABYBEAR", 31}

// KOALABEAR is the 31bit KoalaBear field (p = 2^31 - 2^24 + 1).
var KOALABEAR = Config{"KOALABEAR", 31}

// BLS12_377 is the scalar field of the BLS12-377 curve.
var BLS12_377 = Config{"BLS12_377", 253}

// FIELD_CONFIGS determines the set of supported fields.
var FIELD_CONFIGS = []Config{
	BABYBEAR,
	KOALABEAR,
	BLS12_377,
}

// Config provides a simple mechanism for selecting the prime field used
// throughout.
type Config struct {
	// Name suitable for identifying the config.  This is only really used for
	// improving error reporting, etc.
	Name string
	// Number of bits required to represent the modulus.
	BitWidth uint
}

// GetConfig returns the field configuration corresponding with the given
// name, or nil no such config exists.
func GetConfig(name string) *Config {
	for i := range FIELD_CONFIGS {
		if FIELD_CONFIGS[i].Name == name {
			return &FIELD_CONFIGS[i]
		}
	}
	//
	return nil
}

// ConfigNames returns the names of all supported field configurations.
func ConfigNames() []string {
	names := make([]string, len(FIELD_CONFIGS))
	//
	for i, c := range FIELD_CONFIGS {
		names[i] = c.Name
	}
	//
	return names
}

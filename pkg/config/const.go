/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package config

import (
	"time"
)

const (
	ConfigDir                = ".adc-recorder"
	ConfigFile               = "config"
	DefaultLogLevel          = "info"
	DefaultRegistersName     = "cfg"
	DefaultRegistersSize     = 0x1000
	DefaultBufferName        = "cma"
	DefaultStatusName        = "sts"
	DefaultStatusSize        = 0x1000
	DefaultSampleCount       = 1024 * 1024
	DefaultSettleInterval    = 1 * time.Second
	DefaultArmSettleInterval = 1 * time.Second
	DefaultStatusPollTimeout = 2 * time.Second
)

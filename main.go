// SPDX-License-Identifier: MPL-2.0

package main

import (
	cmd "charmpack/cmd/charmpack"
)

func main() {
	cmd.Execute()
}

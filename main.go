// SPDX-License-Identifier: MPL-2.0

package main

import cmd "pordosol-setup/cmd/psetup"

func main() {
	cmd.Execute()
}

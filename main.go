// SPDX-License-Identifier: MPL-2.0

// Command folio renders markdown documentation trees.
package main

import cmd "folio-cli/cmd/folio"

func main() {
	cmd.Execute()
}

// SPDX-License-Identifier: MPL-2.0

// cfgarc decodes packed config containers into YAML trees.
package main

import (
	cmd "github.com/cfgarc/cfgarc/cmd/cfgarc"
)

func main() {
	cmd.Execute()
}

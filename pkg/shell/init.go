package shell

import (
	"fmt"
	"strings"
)

// InitScript returns the aliases that run icdeck and eval its output.
// binary is the path of the icdeck executable.
func InitScript(kind Kind, binary string) string {
	var b strings.Builder
	if kind == Csh {
		fmt.Fprintf(&b, "alias prj 'eval \"`%s select --shell csh \\!*`\"';\n", binary)
		fmt.Fprintf(&b, "alias prjexit 'eval \"`%s exit --shell csh`\"';\n", binary)
		return b.String()
	}
	fmt.Fprintf(&b, "prj() { eval \"$(%s select --shell %s \"$@\")\"; }\n", ShQuote(binary), kind)
	fmt.Fprintf(&b, "prjexit() { eval \"$(%s exit --shell %s)\"; }\n", ShQuote(binary), kind)
	return b.String()
}

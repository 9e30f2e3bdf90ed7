package recorder

// ExtractOutputName scans pass-through arguments for the output-name flag
// and returns its value plus the arguments with the flag and value
// removed. The name is rewritten per group, so letting the original pair
// through would override the per-group names. A flag with no following
// value is left untouched for the capture binary to reject.
func ExtractOutputName(args []string, flag string) (string, []string) {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			rest := make([]string, 0, len(args)-2)
			rest = append(rest, args[:i]...)
			rest = append(rest, args[i+2:]...)
			return args[i+1], rest
		}
	}
	return "", args
}

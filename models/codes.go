package models

import "strings"

// foldCode reduces an enum code to lower case without underscores, so
// "non_custodial", "NonCustodial" and "NONCUSTODIAL" compare equal.
func foldCode(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", ""))
}

func foldIndex[T ~string](codes ...T) map[string]T {
	index := make(map[string]T, len(codes))
	for _, code := range codes {
		index[foldCode(string(code))] = code
	}
	return index
}

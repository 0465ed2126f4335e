package domain

import (
	"strconv"
	"strings"
)

// ImportIDPrefix namespaces the identity tokens this tool writes to the sink,
// so they never collide with tokens generated by any other import source
// sharing the same account.
const ImportIDPrefix = "splitwise_"

// ImportID derives the identity token for a source expense id. The mapping is
// deterministic and injective: distinct ids never produce the same token.
func ImportID(sourceID int64) string {
	return ImportIDPrefix + strconv.FormatInt(sourceID, 10)
}

// HasImportIDPrefix reports whether a token on an imported record was
// generated by this tool.
func HasImportIDPrefix(token string) bool {
	return strings.HasPrefix(token, ImportIDPrefix)
}

// Package idcodec encodes and decodes composite spectrum ids of the form "localId!sourceFileId",
// used when a spectrum lives in a peak-list file other than the identification file.
package idcodec

import "strings"

const Separator = "!"

// Encode joins a local spectrum id and the id of the file it lives in.
// An empty fileID yields the plain local id.
func Encode(localID, fileID string) string {
	if fileID == "" {
		return localID
	}
	return localID + Separator + fileID
}

// Decode splits a composite id on its first separator.
// ok is false when id is a plain local id, i.e. has no separator or an empty part.
func Decode(id string) (localID, fileID string, ok bool) {
	localID, fileID, found := strings.Cut(id, Separator)
	if !found || localID == "" || fileID == "" {
		return id, "", false
	}
	return localID, fileID, true
}

func IsComposite(id string) bool {
	_, _, ok := Decode(id)
	return ok
}

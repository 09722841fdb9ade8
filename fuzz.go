package classfile

// Fuzz feeds data to ParseBytes for go-fuzz. It returns 1 for a
// successful parse (interesting input worth keeping in the corpus) and 0
// otherwise.
func Fuzz(data []byte) int {
	_, err := ParseBytes(data, &Options{EagerResolve: true})
	if err != nil {
		return 0
	}
	return 1
}

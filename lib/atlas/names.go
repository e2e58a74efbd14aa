package atlas

import "strconv"

// uniqueName returns name if it is not taken. Otherwise, it returns name with
// the first free suffix "_1", "_2", and so on.
func uniqueName(name string, taken map[string]int) string {
	if _, ok := taken[name]; !ok {
		return name
	}
	for i := 1; ; i++ {
		s := name + "_" + strconv.Itoa(i)
		if _, ok := taken[s]; !ok {
			return s
		}
	}
}

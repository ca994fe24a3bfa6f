package util

import "os"

// LookupEnv returns the value and name of the first environment variable
// that is set, even if it is set to the empty string. ok is false when
// none of the variables are set.
func LookupEnv(names ...string) (value, name string, ok bool) {
	for _, n := range names {
		if val, set := os.LookupEnv(n); set {
			return val, n, true
		}
	}
	return "", "", false
}

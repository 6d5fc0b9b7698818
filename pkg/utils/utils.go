package utils

import (
	"hash/fnv"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

var charNotFitToSlug = regexp.MustCompile("[^-a-z0-9]")

func IntPtr(i int) *int {
	return &i
}

func StrPtr(s string) *string {
	return &s
}

func BoolPtr(b bool) *bool {
	return &b
}

func Float64Ptr(f float64) *float64 {
	return &f
}

func LogExit(status int) {
	logrus.Infof("Exiting with status: %v", status)
	os.Exit(status)
}

func hash(s string) string {
	h := fnv.New32a()
	h.Write([]byte(s))
	return strconv.FormatUint(uint64(h.Sum32()), 16)
}

// SlugEncode turns a title into a url-safe slug. Values over the
// length limit keep a hash suffix so distinct titles stay distinct.
func SlugEncode(v string, lengthLimit int) string {
	res := strings.ToLower(v)
	res = charNotFitToSlug.ReplaceAllString(res, "-")

	if len(res) < lengthLimit {
		return res
	}
	h := hash(v)
	edge := lengthLimit - len(h) - 1
	return res[:edge] + "-" + h
}

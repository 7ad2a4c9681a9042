//go:build integration

package postgres_test

import (
	"fmt"
	"strconv"
)

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

// uuidFor arma un UUID determinista a partir del correlativo.
func uuidFor(n int64) string {
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", n)
}

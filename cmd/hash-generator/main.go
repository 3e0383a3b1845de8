// Command hash-generator prints bcrypt hashes for seeding user records.
//
// Usage:
//
//	hash-generator [-cost N] password...
//
// The cost defaults to COHORT_AUTH_BCRYPT_COST, or 10 when unset.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/phrazzld/cohort-tools-api/internal/service/auth"
)

const defaultCost = 10

func main() {
	cost := flag.Int("cost", configuredCost(), "bcrypt cost factor")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: hash-generator [-cost N] password...")
		os.Exit(2)
	}

	hasher := auth.NewBcryptHasher(*cost)
	failed := false
	for _, password := range flag.Args() {
		hash, err := hasher.Hash(password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating hash: %v\n", err)
			failed = true
			continue
		}
		fmt.Println(hash)
	}
	if failed {
		os.Exit(1)
	}
}

func configuredCost() int {
	if v, err := strconv.Atoi(os.Getenv("COHORT_AUTH_BCRYPT_COST")); err == nil {
		return v
	}
	return defaultCost
}

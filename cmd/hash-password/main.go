// Command hash-password prints bcrypt hashes for passwords read one per line
// from stdin. The output can be used to seed users directly in the database,
// for example the first administrator account.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "hash-password: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, in io.Reader, out, errOut io.Writer) error {
	fs := flag.NewFlagSet("hash-password", flag.ContinueOnError)
	fs.SetOutput(errOut)
	cost := fs.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	if err := fs.Parse(args); err != nil {
		return err
	}

	hasher := auth.NewBcryptHasher(*cost)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		password := scanner.Text()
		if password == "" {
			continue
		}
		hash, err := hasher.Hash(password)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, hash); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// Command powsolve brute-forces a challenge nonce the same way the hosted
// solver page does. Handy for testing a bot deployment from the terminal.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/uvensys/cerberus/lib/challenge/proofofwork"
)

var (
	secret     = flag.String("m", "", "challenge secret (the m query parameter of the solver URL)")
	difficulty = flag.Int("d", 0, "number of leading zero hex digits required (the d query parameter)")
	maxTries   = flag.Uint64("max", 1<<32, "give up after this many candidates")
)

func main() {
	flag.Parse()

	if *secret == "" {
		log.Fatal("-m must be set to the challenge secret")
	}

	nonce, ok := proofofwork.Find(*secret, *difficulty, *maxTries)
	if !ok {
		log.Fatalf("no solution within %d candidates", *maxTries)
	}

	fmt.Println(nonce)
}

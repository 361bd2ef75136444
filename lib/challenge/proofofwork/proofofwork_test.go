package proofofwork

import (
	"errors"
	"fmt"
	"testing"

	"github.com/uvensys/cerberus/lib/challenge"
)

func TestCheck(t *testing.T) {
	// sha256("hunter0") = 2652bdba..., no leading zero, so "0" solves
	// difficulty 0 but not difficulty 1.
	const secret = "hunter"

	for _, cs := range []struct {
		name       string
		nonce      string
		difficulty int
		err        error
	}{
		{
			name:       "trivial difficulty accepts any digits",
			nonce:      "0",
			difficulty: 0,
			err:        nil,
		},
		{
			name:       "leading zeros are hashed as-is",
			nonce:      "000",
			difficulty: 0,
			err:        nil,
		},
		{
			name:       "wider than uint64 is still well-formed",
			nonce:      "99999999999999999999999999999999",
			difficulty: 0,
			err:        nil,
		},
		{
			name:       "empty",
			nonce:      "",
			difficulty: 0,
			err:        challenge.ErrInvalidFormat,
		},
		{
			name:       "trailing garbage",
			nonce:      "12a",
			difficulty: 0,
			err:        challenge.ErrInvalidFormat,
		},
		{
			name:       "negative",
			nonce:      "-5",
			difficulty: 0,
			err:        challenge.ErrInvalidFormat,
		},
		{
			name:       "explicit plus sign",
			nonce:      "+5",
			difficulty: 0,
			err:        challenge.ErrInvalidFormat,
		},
		{
			name:       "inner whitespace",
			nonce:      "1 2",
			difficulty: 0,
			err:        challenge.ErrInvalidFormat,
		},
		{
			name:       "wrong hash",
			nonce:      "0",
			difficulty: 1,
			err:        challenge.ErrFailed,
		},
	} {
		t.Run(cs.name, func(t *testing.T) {
			if err := (Impl{}).Check(secret, cs.nonce, cs.difficulty); !errors.Is(err, cs.err) {
				t.Errorf("got wrong error from Check, got %v but wanted %v", err, cs.err)
			}
		})
	}
}

func TestCheckDeterministic(t *testing.T) {
	first := (Impl{}).Check("abc123XYZ0000000", "42", 2)

	for range 32 {
		err := (Impl{}).Check("abc123XYZ0000000", "42", 2)
		if (err == nil) != (first == nil) {
			t.Fatalf("Check is not deterministic: got %v then %v", first, err)
		}
	}
}

func TestSolvable(t *testing.T) {
	// Every (secret, difficulty) pair must have a reachable solution,
	// otherwise members get muted forever.
	for difficulty := range 3 {
		t.Run(fmt.Sprint(difficulty), func(t *testing.T) {
			secret := fmt.Sprintf("secret-%d", difficulty)

			nonce, ok := Find(secret, difficulty, 1<<20)
			if !ok {
				t.Fatalf("no solution for difficulty %d within bound", difficulty)
			}

			if err := (Impl{}).Check(secret, fmt.Sprint(nonce), difficulty); err != nil {
				t.Errorf("Find returned %d but Check rejected it: %v", nonce, err)
			}
		})
	}
}

func TestScenario(t *testing.T) {
	const secret = "abc123XYZ0000000"
	const difficulty = 2

	nonce, ok := Find(secret, difficulty, 1<<20)
	if !ok {
		t.Fatal("no solution within bound")
	}

	if err := (Impl{}).Check(secret, fmt.Sprint(nonce), difficulty); err != nil {
		t.Errorf("smallest solution %d rejected: %v", nonce, err)
	}

	// nonce+1 may coincidentally also hit the target, but when it misses
	// the failure has to be ErrFailed, never a format error.
	if err := (Impl{}).Check(secret, fmt.Sprint(nonce+1), difficulty); err != nil && !errors.Is(err, challenge.ErrFailed) {
		t.Errorf("got wrong error for a losing nonce: %v", err)
	}
}

func TestFindBound(t *testing.T) {
	if _, ok := Find("whatever", 64, 10); ok {
		t.Error("wanted Find to give up at the bound, it did not")
	}
}

func TestURL(t *testing.T) {
	for _, cs := range []struct {
		name       string
		base       string
		secret     string
		difficulty int
		want       string
	}{
		{
			name:       "plain",
			base:       "https://example.com/pow.html",
			secret:     "abc123",
			difficulty: 2,
			want:       "https://example.com/pow.html?d=2&m=abc123",
		},
		{
			name:       "secret gets escaped",
			base:       "https://example.com/pow.html",
			secret:     "a b+c",
			difficulty: 4,
			want:       "https://example.com/pow.html?d=4&m=a+b%2Bc",
		},
	} {
		t.Run(cs.name, func(t *testing.T) {
			if got := URL(cs.base, cs.secret, cs.difficulty); got != cs.want {
				t.Errorf("wanted %q but got %q", cs.want, got)
			}
		})
	}
}

// Package all imports every store backend so they register themselves.
package all

import (
	_ "github.com/uvensys/cerberus/lib/store/memory"
)

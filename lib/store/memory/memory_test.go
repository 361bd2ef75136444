package memory

import (
	"testing"

	"github.com/uvensys/cerberus/lib/store/storetest"
)

func TestMemory(t *testing.T) {
	storetest.Common(t, factory{}, nil)
}

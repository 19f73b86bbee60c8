package memory_test

import (
	"testing"

	"menuflow/pkg/adapters/memory"
	"menuflow/pkg/ports/tests"
)

func TestMemoryStore_Contract(t *testing.T) {
	tests.SessionStoreContractTest(t, memory.NewStore())
}

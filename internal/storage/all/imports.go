// Package all registers every storage backend with the factory. Importing
// it for side effects keeps callers backend-agnostic.
package all

import (
	_ "mongoetl/internal/storage/mongodb"
)

package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("INDUCT_TEST_MODE") == "" {
			_ = os.Setenv("INDUCT_TEST_MODE", "1")
		}
	})
}

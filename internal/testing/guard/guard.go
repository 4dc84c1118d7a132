package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("GYMMAX_TEST_MODE") == "" {
			_ = os.Setenv("GYMMAX_TEST_MODE", "1")
		}
	})
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jpalmerr/writable"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	count := writable.New(0,
		writable.WithName("count"),
		writable.WithLogger(logger),
	)

	// subscribers are called once immediately, then on every change
	unsubscribe := count.Subscribe(func(value int) {
		fmt.Println("The new count value from subscriber is:", value)
	})

	count.Set(1)
	fmt.Println("The current count value is:", count.Value())

	count.Update(func(current int) int { return current + 1 })
	fmt.Println("The current count value is:", count.Value())

	count.Set(0)
	count.Update(func(current int) int { return current - 100 })
	fmt.Println("The current count value is:", count.Value())

	unsubscribe()

	// no subscriber output from here on
	count.Update(func(current int) int { return current + 100 })
	fmt.Println("The current count value is:", count.Value())

	// fallible updates leave the value alone on error
	err := count.TryUpdate(func(current int) (int, error) {
		if current == 0 {
			return current, fmt.Errorf("refusing to divide %d", current)
		}
		return 100 / current, nil
	})
	if err != nil {
		logger.Error("update rejected", "error", err)
	}
	fmt.Println("The current count value is:", count.Value())
}

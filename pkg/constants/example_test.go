package constants_test

import (
	"context"
	"fmt"
	"time"

	"github.com/agentstation/restock/pkg/constants"
)

// Example_timeouts demonstrates bounding an extraction attempt
func Example_timeouts() {
	ctx, cancel := context.WithTimeout(context.Background(), constants.ExtractionTimeout)
	defer cancel()

	deadline, ok := ctx.Deadline()
	fmt.Println(ok, time.Until(deadline) <= constants.ExtractionTimeout)
	// Output: true true
}

// Example_defaults shows the values shared by the CLI and the library
func Example_defaults() {
	fmt.Println(constants.DefaultModel)
	fmt.Println(constants.NotApplicable)
	fmt.Println(constants.MaxRetries)
	// Output:
	// gemini-1.5-flash
	// Not Applicable
	// 3
}

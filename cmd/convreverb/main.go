// SPDX-License-Identifier: EPL-2.0

// Command convreverb convolves a dry WAV recording with an impulse response
// and writes the reverberated result as 16-bit mono WAV.
//
//	convreverb [flags] <dry> <impulse> <output>
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		// cobra already printed the error
		os.Exit(1)
	}
}

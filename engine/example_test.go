package engine_test

import (
	"context"
	"fmt"

	"github.com/cwbudde/spectral-transmission/engine"
	"github.com/cwbudde/spectral-transmission/registry"
	"github.com/cwbudde/spectral-transmission/source"
)

func ExampleSession_Compute() {
	mem := source.NewMemory()
	mem.Put("excitation/LED.csv", "300,100\n800,100\n")
	mem.Put("dyes/Demo.csv", `Quantum Yield: 0.46
Extinction Coefficient: 73000
400,0,0
500,100,100
600,0,0
`)
	reg := registry.New(mem)
	reg.Register("LED", "excitation/LED.csv")
	reg.Register("Demo", "dyes/Demo.csv")

	s := engine.NewSession(reg)
	s.SelectExcitationSource("LED")
	s.SelectDye("Demo")
	res, err := s.Compute(context.Background())
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(res)
	// Output: Efficiency: ex 20.0%, em 100.0%, brightness 1.00
}

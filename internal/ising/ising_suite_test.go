package ising_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestIsing(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Ising Suite")
}

package compute_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mandel/internal/compute"
)

var _ = Describe("Compare", func() {
	It("finds no difference between scalar and lane float64", func() {
		cmps, err := compute.Compare(context.Background(), smallConfig("fixed64"), "fixed64", []string{"simd4x64", "fixed64"})
		Expect(err).NotTo(HaveOccurred())
		Expect(cmps).To(HaveLen(2))

		for _, c := range cmps {
			Expect(c.Mismatches).To(BeZero(), c.Backend)
			Expect(c.MaxDelta).To(BeZero(), c.Backend)
		}
		Expect(cmps[0].Backend).To(Equal("simd4x64"))
	})

	It("fails on an unknown backend", func() {
		_, err := compute.Compare(context.Background(), smallConfig("fixed64"), "fixed64", []string{"nope"})
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Bench", func() {
	It("measures one pass per zoom", func() {
		b := mustNew(smallConfig("simd4x64"))
		ms, err := compute.Bench(context.Background(), b, []string{"1", "10", "100"})
		Expect(err).NotTo(HaveOccurred())
		Expect(ms).To(HaveLen(3))

		for i, z := range []string{"1", "10", "100"} {
			Expect(ms[i].Zoom).To(Equal(z))
			Expect(ms[i].Backend).To(Equal("simd4x64"))
			Expect(ms[i].Interior).To(BeNumerically(">=", 0))
			Expect(ms[i].Interior).To(BeNumerically("<=", 1))
		}
		Expect(b.View().Zoom).To(Equal("100"))
	})
})

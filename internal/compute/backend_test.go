package compute_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mandel/internal/compute"
	"github.com/san-kum/mandel/internal/config"
	"github.com/san-kum/mandel/internal/fractal"
	"github.com/san-kum/mandel/internal/view"
)

func smallConfig(backend string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Backend = backend
	cfg.Width = 32
	cfg.Height = 24
	cfg.MaxIter = 100
	cfg.View.CenterRe = "-0.75"
	cfg.View.CenterIm = "0.1"
	cfg.View.Zoom = "4"
	return cfg
}

func mustNew(cfg *config.Config) compute.Backend {
	b, err := compute.New(cfg)
	Expect(err).NotTo(HaveOccurred())
	return b
}

func render(b compute.Backend) ([]byte, []int) {
	f, ok, err := b.Redraw(context.Background())
	Expect(err).NotTo(HaveOccurred())
	Expect(ok).To(BeTrue())
	defer f.Release()
	return append([]byte(nil), f.Pix...), append([]int(nil), f.Counts...)
}

var _ = Describe("Registry", func() {
	It("lists every backend", func() {
		Expect(compute.Names()).To(Equal([]string{"arbitrary", "decimal", "extended", "fixed64", "simd4x64"}))
	})

	It("rejects unknown backends", func() {
		_, err := compute.New(smallConfig("quad"))
		Expect(errors.Is(err, fractal.ErrUnknownBackend)).To(BeTrue())
	})

	It("rejects invalid configuration", func() {
		cfg := smallConfig("fixed64")
		cfg.View.Zoom = "-1"
		_, err := compute.New(cfg)

		var cfgErr *fractal.ConfigurationError
		Expect(errors.As(err, &cfgErr)).To(BeTrue())
		Expect(errors.Is(err, fractal.ErrInvalidZoom)).To(BeTrue())
	})
})

var _ = Describe("Backends", func() {
	points := []struct {
		re, im string
		want   int
	}{
		{"0", "0", 1000},
		{"-1", "0", 1000},
		{"2.5", "0", 1},
		{"2", "0", 2},
		{"0.3", "0", 12},
		{"-0.75", "0.1", 33},
		{"-0.745", "0.113", 127},
	}

	DescribeTable("agree on sample points",
		func(name string) {
			cfg := smallConfig(name)
			cfg.MaxIter = 1000
			b := mustNew(cfg)
			Expect(b.Name()).To(Equal(name))

			for _, p := range points {
				got, err := b.Evaluate(p.re, p.im)
				Expect(err).NotTo(HaveOccurred())
				Expect(got).To(Equal(p.want), "point (%s, %s)", p.re, p.im)
			}
		},
		Entry("fixed64", "fixed64"),
		Entry("simd4x64", "simd4x64"),
		Entry("extended", "extended"),
		Entry("arbitrary", "arbitrary"),
		Entry("decimal", "decimal"),
	)

	DescribeTable("render byte-identical frames for identical views",
		func(name string) {
			pixA, countsA := render(mustNew(smallConfig(name)))
			pixB, countsB := render(mustNew(smallConfig(name)))

			Expect(pixA).To(HaveLen(32 * 24 * 3))
			Expect(pixA).To(Equal(pixB))
			Expect(countsA).To(Equal(countsB))
		},
		Entry("fixed64", "fixed64"),
		Entry("simd4x64", "simd4x64"),
		Entry("extended", "extended"),
		Entry("arbitrary", "arbitrary"),
		Entry("decimal", "decimal"),
	)

	It("rejects unparsable points", func() {
		b := mustNew(smallConfig("arbitrary"))
		_, err := b.Evaluate("one", "0")
		Expect(errors.Is(err, fractal.ErrParse)).To(BeTrue())
	})

	It("rejects non-finite input on every backend", func() {
		for _, name := range compute.Names() {
			b := mustNew(smallConfig(name))
			for _, v := range []string{"Inf", "-Inf", "NaN"} {
				_, err := b.Evaluate(v, "0")
				Expect(errors.Is(err, fractal.ErrParse)).To(BeTrue(), "%s Evaluate(%s)", name, v)
			}

			cfg := smallConfig(name)
			cfg.View.Zoom = "Inf"
			_, err := compute.New(cfg)
			var cfgErr *fractal.ConfigurationError
			Expect(errors.As(err, &cfgErr)).To(BeTrue(), name)
		}
	})

	It("reports lanes", func() {
		Expect(mustNew(smallConfig("simd4x64")).Lanes()).To(Equal(4))
		Expect(mustNew(smallConfig("fixed64")).Lanes()).To(Equal(1))
	})
})

var _ = Describe("Redraw", func() {
	var b compute.Backend

	BeforeEach(func() {
		b = mustNew(smallConfig("fixed64"))
	})

	It("renders the first frame and then waits for a change", func() {
		Expect(b.Dirty()).To(BeTrue())
		render(b)
		Expect(b.Dirty()).To(BeFalse())

		f, ok, err := b.Redraw(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
		Expect(f).To(BeNil())
	})

	It("settles the start view in a single pass", func() {
		f, ok, err := b.Redraw(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(f.Seq).To(Equal(uint64(1)))
		f.Release()

		Expect(b.Dirty()).To(BeFalse())
		_, ran, _ := b.Redraw(context.Background())
		Expect(ran).To(BeFalse())
	})

	It("coalesces several commands into one pass", func() {
		render(b)
		for _, cmd := range []view.Command{view.PanLeft, view.ZoomIn, view.ZoomIn, view.PanUp} {
			Expect(b.Apply(cmd)).To(Succeed())
		}
		Expect(b.Dirty()).To(BeTrue())

		render(b)
		_, ok, _ := b.Redraw(context.Background())
		Expect(ok).To(BeFalse())
	})

	It("does not redraw on quit", func() {
		render(b)
		Expect(b.Apply(view.Quit)).To(Succeed())
		Expect(b.Dirty()).To(BeFalse())
	})

	It("returns to the start view on reset", func() {
		start := b.View()
		Expect(b.Apply(view.ZoomIn)).To(Succeed())
		Expect(b.View()).NotTo(Equal(start))
		Expect(b.Apply(view.Reset)).To(Succeed())
		Expect(b.View()).To(Equal(start))
	})

	It("moves to a snapshot", func() {
		render(b)
		target := view.Snapshot{CenterRe: "-1.8", CenterIm: "-0.06", Zoom: "35"}
		Expect(b.Goto(target)).To(Succeed())
		Expect(b.View()).To(Equal(target))
		Expect(b.Dirty()).To(BeTrue())
	})

	It("redraws at the new size after a resize", func() {
		render(b)
		Expect(b.Resize(16, 8)).To(Succeed())
		Expect(b.Dirty()).To(BeTrue())

		pix, counts := render(b)
		Expect(pix).To(HaveLen(16 * 8 * 3))
		Expect(counts).To(HaveLen(16 * 8))

		w, h := b.Size()
		Expect(w).To(Equal(16))
		Expect(h).To(Equal(8))
	})

	It("rejects a non-positive size", func() {
		err := b.Resize(0, 10)
		Expect(errors.Is(err, fractal.ErrInvalidDimensions)).To(BeTrue())
	})

	It("keeps the pass owed when cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, ok, err := b.Redraw(ctx)
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
		Expect(ok).To(BeFalse())
		Expect(b.Dirty()).To(BeTrue())

		render(b)
	})

	It("keeps rendering past the precision horizon", func() {
		Expect(b.Goto(view.Snapshot{CenterRe: "-0.75", CenterIm: "0.1", Zoom: "1e15"})).To(Succeed())
		pix, _ := render(b)
		Expect(pix).To(HaveLen(32 * 24 * 3))
	})
})

var _ = Describe("End to end", func() {
	DescribeTable("reproduces the center pixel of the default view",
		func(name string) {
			cfg := config.DefaultConfig()
			cfg.Backend = name

			b := mustNew(cfg)
			want, err := b.Evaluate(view.DefaultCenterRe, view.DefaultCenterIm)
			Expect(err).NotTo(HaveOccurred())

			f, ok, err := b.Redraw(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			defer f.Release()
			Expect(f.Count(200, 150)).To(Equal(want))

			again, _ := mustNew(cfg).Evaluate(view.DefaultCenterRe, view.DefaultCenterIm)
			Expect(again).To(Equal(want))
		},
		Entry("fixed64", "fixed64"),
		Entry("simd4x64", "simd4x64"),
	)

	DescribeTable("evaluates the default center reproducibly at high precision",
		func(name string) {
			cfg := config.DefaultConfig()
			cfg.Backend = name

			first, err := mustNew(cfg).Evaluate(view.DefaultCenterRe, view.DefaultCenterIm)
			Expect(err).NotTo(HaveOccurred())
			second, err := mustNew(cfg).Evaluate(view.DefaultCenterRe, view.DefaultCenterIm)
			Expect(err).NotTo(HaveOccurred())

			Expect(first).To(Equal(second))
			Expect(first).To(BeNumerically(">", 0))
			Expect(first).To(BeNumerically("<=", 1000))
		},
		Entry("extended", "extended"),
		Entry("arbitrary", "arbitrary"),
		Entry("decimal", "decimal"),
	)
})

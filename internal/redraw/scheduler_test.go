package redraw_test

import (
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mandel/internal/redraw"
)

var _ = Describe("Scheduler", func() {
	var s *redraw.Scheduler

	BeforeEach(func() {
		s = redraw.New()
	})

	It("starts dirty with one pass owed", func() {
		Expect(s.State()).To(Equal(redraw.Dirty))
		Expect(s.Pending()).To(Equal(1))
	})

	It("becomes clean after a completed pass", func() {
		t, ok := s.Begin()
		Expect(ok).To(BeTrue())
		s.Complete(t)

		Expect(s.State()).To(Equal(redraw.Clean))
		Expect(s.Pending()).To(BeZero())
		Expect(s.Passes()).To(Equal(uint64(1)))
	})

	It("does not start a pass when clean", func() {
		t, _ := s.Begin()
		s.Complete(t)

		_, ok := s.Begin()
		Expect(ok).To(BeFalse())
	})

	It("coalesces many mutations into one pending pass", func() {
		t, _ := s.Begin()
		s.Complete(t)

		for i := 0; i < 10; i++ {
			s.Invalidate()
		}
		Expect(s.Pending()).To(Equal(1))

		t, ok := s.Begin()
		Expect(ok).To(BeTrue())
		s.Complete(t)
		Expect(s.Pending()).To(BeZero())
		Expect(s.Passes()).To(Equal(uint64(2)))
	})

	It("refuses a second pass while one is in flight", func() {
		_, ok := s.Begin()
		Expect(ok).To(BeTrue())

		s.Invalidate()
		_, ok = s.Begin()
		Expect(ok).To(BeFalse())
	})

	Context("when the view changes during a pass", func() {
		It("stays dirty and owes exactly one more pass", func() {
			t, _ := s.Begin()
			s.Invalidate()
			s.Invalidate()
			Expect(s.Current(t)).To(BeFalse())
			s.Complete(t)

			Expect(s.State()).To(Equal(redraw.Dirty))
			Expect(s.Pending()).To(Equal(1))

			t, ok := s.Begin()
			Expect(ok).To(BeTrue())
			Expect(s.Current(t)).To(BeTrue())
			s.Complete(t)
			Expect(s.State()).To(Equal(redraw.Clean))
		})
	})

	It("keeps an aborted pass owed", func() {
		t, _ := s.Begin()
		s.Abort(t)

		Expect(s.Pending()).To(Equal(1))
		Expect(s.Passes()).To(BeZero())
		_, ok := s.Begin()
		Expect(ok).To(BeTrue())
	})

	It("is safe for concurrent invalidation", func() {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					s.Invalidate()
				}
			}()
		}
		wg.Wait()

		Expect(s.Pending()).To(Equal(1))
		t, ok := s.Begin()
		Expect(ok).To(BeTrue())
		s.Complete(t)
		Expect(s.State()).To(Equal(redraw.Clean))
	})
})

package geo

import (
	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"
)

var _ = Describe("RingMap", func() {
	var subject *RingMap
	var o1, o2, h1, h2, h3 Ring

	BeforeEach(func() {
		o1 = square(0, 0, 10, 10)
		o2 = square(20, 0, 30, 10)
		h1 = square(1, 1, 2, 2)
		h2 = square(3, 3, 4, 4)
		h3 = square(21, 1, 22, 2)

		subject = NewRingMap()
		subject.Put(o1, []Ring{h1})
		subject.Put(o2, nil)
	})

	It("should put", func() {
		Expect(subject.Len()).To(Equal(2))
		Expect(subject.Keys()).To(Equal([]Ring{o1, o2}))
		Expect(subject.ValuesFor(o1)).To(Equal([]Ring{h1}))
		Expect(subject.ValuesFor(o2)).To(BeEmpty())
		Expect(subject.ValuesFor(o2)).NotTo(BeNil())
	})

	It("should replace on put, keeping the order", func() {
		subject.Put(square(0, 0, 10, 10), []Ring{h2})
		Expect(subject.Len()).To(Equal(2))
		Expect(subject.Keys()).To(Equal([]Ring{o1, o2}))
		Expect(subject.ValuesFor(o1)).To(Equal([]Ring{h2}))
	})

	It("should return empty values for unknown keys", func() {
		Expect(subject.ValuesFor(h1)).To(BeEmpty())
		Expect(subject.Contains(h1)).To(BeFalse())
		Expect(subject.Contains(square(0, 0, 10, 10))).To(BeTrue())
	})

	It("should add", func() {
		subject.Add(o1, h2)
		subject.Add(o2, h3)
		subject.Add(h1)
		Expect(subject.Keys()).To(Equal([]Ring{o1, o2, h1}))
		Expect(subject.ValuesFor(o1)).To(Equal([]Ring{h1, h2}))
		Expect(subject.ValuesFor(o2)).To(Equal([]Ring{h3}))
		Expect(subject.ValuesFor(h1)).To(BeEmpty())
	})

	It("should accumulate on AddAll", func() {
		other := NewRingMap()
		other.Put(o1, []Ring{h2, h1})
		other.Put(h3, nil)

		subject.AddAll(other)
		Expect(subject.Keys()).To(Equal([]Ring{o1, o2, h3}))
		Expect(subject.ValuesFor(o1)).To(Equal([]Ring{h1, h2, h1}))
		Expect(subject.ValuesFor(h3)).To(BeEmpty())
		Expect(other.ValuesFor(o1)).To(Equal([]Ring{h2, h1}))
	})

	It("should overwrite on PutAll", func() {
		other := NewRingMap()
		other.Put(o1, []Ring{h2})
		other.Put(h3, []Ring{h1})

		subject.PutAll(other)
		Expect(subject.Keys()).To(Equal([]Ring{o1, o2, h3}))
		Expect(subject.ValuesFor(o1)).To(Equal([]Ring{h2}))
		Expect(subject.ValuesFor(h3)).To(Equal([]Ring{h1}))
	})

	It("should flatten values", func() {
		subject.Put(o2, []Ring{h3, h2})
		Expect(subject.AllValues()).To(Equal([]Ring{h1, h3, h2}))
		Expect(NewRingMap().AllValues()).To(BeEmpty())
	})

	It("should clone without aliasing", func() {
		holes := make([]Ring, 1, 8)
		holes[0] = h1
		subject.Put(o1, holes)

		clone := subject.Clone()
		clone.Add(o1, h2)
		clone.Add(h3)

		Expect(clone.ValuesFor(o1)).To(Equal([]Ring{h1, h2}))
		Expect(subject.ValuesFor(o1)).To(Equal([]Ring{h1}))
		Expect(holes[:2][1]).To(BeNil())
		Expect(subject.Len()).To(Equal(2))
		Expect(clone.Len()).To(Equal(3))
	})

	It("should support zero values", func() {
		var m RingMap
		Expect(m.Len()).To(Equal(0))
		Expect(m.ValuesFor(o1)).To(BeEmpty())

		m.Add(o1, h1)
		Expect(m.Keys()).To(Equal([]Ring{o1}))
		Expect(m.ValuesFor(o1)).To(Equal([]Ring{h1}))
	})
})

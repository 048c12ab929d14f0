package geo

import (
	"errors"

	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"
)

type mockClipper struct {
	req   *Clip
	rings *RingMap
	err   error
}

func (c *mockClipper) Clip(req *Clip) (*RingMap, error) {
	c.req = req
	return c.rings, c.err
}

var _ = Describe("Clip", func() {
	var subject *Clip
	var a, b *MultiPolygon

	BeforeEach(func() {
		a = squareWithHole()
		b = ForRing(square(0.5, 0.5, 2, 2))
		subject = a.Clip(b, ClipIntersection)
	})

	It("should build requests", func() {
		Expect(subject.Type).To(Equal(ClipIntersection))
		Expect(subject.Subject).To(BeIdenticalTo(a))
		Expect(subject.Clipping).To(BeIdenticalTo(b))
		Expect(NewClip(ClipXOR, b, a)).To(Equal(&Clip{Type: ClipXOR, Subject: b, Clipping: a}))
	})

	It("should resolve through engines", func() {
		rings := NewRingMap()
		rings.Put(square(0.75, 0.75, 1, 1), nil)
		engine := &mockClipper{rings: rings}

		res, err := subject.Resolve(engine)
		Expect(err).NotTo(HaveOccurred())
		Expect(engine.req).To(BeIdenticalTo(subject))
		Expect(res.Outers()).To(Equal([]Ring{square(0.75, 0.75, 1, 1)}))
	})

	It("should propagate engine errors", func() {
		_, err := subject.Resolve(&mockClipper{err: errors.New("failed")})
		Expect(err).To(MatchError("failed"))
	})

	It("should have names", func() {
		Expect(ClipUnion.String()).To(Equal("union"))
		Expect(ClipIntersection.String()).To(Equal("intersection"))
		Expect(ClipDifference.String()).To(Equal("difference"))
		Expect(ClipXOR.String()).To(Equal("xor"))
		Expect(ClipType(0).String()).To(Equal("unknown"))
	})

	It("should parse names", func() {
		t, ok := ParseClipType("difference")
		Expect(ok).To(BeTrue())
		Expect(t).To(Equal(ClipDifference))

		_, ok = ParseClipType("unknown")
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Role", func() {
	It("should parse", func() {
		Expect(RoleOuter.String()).To(Equal("outer"))
		Expect(RoleInner.String()).To(Equal("inner"))
		role, ok := ParseRole("inner")
		Expect(ok).To(BeTrue())
		Expect(role).To(Equal(RoleInner))

		_, ok = ParseRole("other")
		Expect(ok).To(BeFalse())
	})
})

package drivetrain_test

import (
	"math"

	"github.com/golang/geo/r3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/holodrive/internal/drivetrain"
	"github.com/san-kum/holodrive/internal/motor"
	"github.com/san-kum/holodrive/internal/vecmath"
)

var _ = Describe("Drivetrain", func() {
	var dt *drivetrain.Drivetrain

	BeforeEach(func() {
		dt = newROV6()
	})

	It("starts at the reference orientation", func() {
		Expect(drivetrain.New().Orientation()).To(Equal(drivetrain.Reference))
		Expect(drivetrain.Reference.Z).To(Equal(math.Pi / 2))
	})

	It("accepts a starting orientation", func() {
		o := r3.Vector{X: 0.1, Y: 0.2, Z: 0.3}
		Expect(drivetrain.New(drivetrain.WithOrientation(o)).Orientation()).To(Equal(o))
	})

	It("updates orientation", func() {
		dt.SetOrientation(0.5, -0.25, math.Pi)
		Expect(dt.Orientation()).To(Equal(r3.Vector{X: 0.5, Y: -0.25, Z: math.Pi}))
	})

	Describe("index access", func() {
		It("returns motors in insertion order", func() {
			m, err := dt.MotorByIndex(3)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Name()).To(Equal("br"))
		})

		It("rejects invalid indices", func() {
			for _, idx := range []int{-1, 6, 100} {
				_, err := dt.MotorByIndex(idx)
				Expect(err).To(MatchError(drivetrain.ErrIndexOutOfRange))
				Expect(dt.RemoveMotorByIndex(idx)).To(MatchError(drivetrain.ErrIndexOutOfRange))
			}
			Expect(dt.Len()).To(Equal(6))
		})

		It("removes by index", func() {
			Expect(dt.RemoveMotorByIndex(0)).To(Succeed())
			Expect(dt.Names()).To(Equal([]string{"fl", "bl", "br", "fu", "bu"}))
		})
	})

	Describe("name access", func() {
		It("finds the first match", func() {
			_, err := dt.AddMotor("fr", r3.Vector{Z: -1}, r3.Vector{X: 1}, false, pwmStd)
			Expect(err).NotTo(HaveOccurred())

			m, ok := dt.MotorByName("fr")
			Expect(ok).To(BeTrue())
			Expect(m.Position().X).To(BeNumerically("~", half, 1e-12))
		})

		It("reports a missing name without error", func() {
			m, ok := dt.MotorByName("nope")
			Expect(ok).To(BeFalse())
			Expect(m).To(BeNil())
			Expect(dt.RemoveMotorByName("nope")).To(BeFalse())
			Expect(dt.Len()).To(Equal(6))
		})

		It("removes only the first match", func() {
			_, err := dt.AddMotor("fu", r3.Vector{Z: -1}, r3.Vector{X: 1}, false, pwmStd)
			Expect(err).NotTo(HaveOccurred())

			Expect(dt.RemoveMotorByName("fu")).To(BeTrue())
			Expect(dt.Names()).To(Equal([]string{"fr", "fl", "bl", "br", "bu", "fu"}))
		})
	})

	It("rejects a zero direction", func() {
		_, err := dt.AddMotor("bad", r3.Vector{X: 1}, r3.Vector{}, false, motor.DefaultBounds)
		Expect(err).To(MatchError(vecmath.ErrDivisionByZero))
		Expect(dt.Len()).To(Equal(6))
	})

	It("copies the motor slice", func() {
		motors := dt.Motors()
		motors[0] = nil
		m, err := dt.MotorByIndex(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(m).NotTo(BeNil())
	})

	It("sees motor mutations in later mixes", func() {
		m, ok := dt.MotorByName("fl")
		Expect(ok).To(BeTrue())
		m.SetInverted(true)

		vels, err := dt.MotorVels(r3.Vector{X: half, Y: half}, r3.Vector{}, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(vels[1]).To(BeNumerically("~", -1, 1e-9))
	})
})

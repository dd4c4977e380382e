package drivetrain_test

import (
	"math"

	"github.com/golang/geo/r3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/holodrive/internal/drivetrain"
	"github.com/san-kum/holodrive/internal/motor"
)

var (
	half   = math.Sqrt2 / 2
	pwmStd = motor.Bounds{Reverse: 1100, Stop: 1500, Forward: 1900}
	north  = r3.Vector{Z: math.Pi / 2}
	south  = r3.Vector{Z: 3 * math.Pi / 2}
)

// newROV6 builds four X-configured horizontal thrusters (fr, fl, bl, br) and
// two vertical thrusters (fu, bu).
func newROV6() *drivetrain.Drivetrain {
	dt := drivetrain.New()
	rig := []struct {
		name     string
		pos, dir r3.Vector
	}{
		{"fr", r3.Vector{X: half, Y: half}, r3.Vector{X: -half, Y: half}},
		{"fl", r3.Vector{X: -half, Y: half}, r3.Vector{X: half, Y: half}},
		{"bl", r3.Vector{X: -half, Y: -half}, r3.Vector{X: half, Y: -half}},
		{"br", r3.Vector{X: half, Y: -half}, r3.Vector{X: -half, Y: -half}},
		{"fu", r3.Vector{Y: 1}, r3.Vector{Z: 1}},
		{"bu", r3.Vector{Y: -1}, r3.Vector{Z: 1}},
	}
	for _, m := range rig {
		_, err := dt.AddMotor(m.name, m.pos, m.dir, false, pwmStd)
		Expect(err).NotTo(HaveOccurred())
	}
	return dt
}

func expectVels(got, expected []float64, tol float64) {
	Expect(got).To(HaveLen(len(expected)))
	for i := range expected {
		Expect(got[i]).To(BeNumerically("~", expected[i], tol), "motor %d", i)
	}
}

func setOrientation(dt *drivetrain.Drivetrain, o r3.Vector) {
	dt.SetOrientation(o.X, o.Y, o.Z)
}

var _ = Describe("Mixing", func() {
	var dt *drivetrain.Drivetrain

	BeforeEach(func() {
		dt = newROV6()
	})

	DescribeTable("translation facing north",
		func(translation r3.Vector, expected []float64) {
			setOrientation(dt, north)
			vels, err := dt.MotorVels(translation, r3.Vector{}, false)
			Expect(err).NotTo(HaveOccurred())
			expectVels(vels, expected, 1e-9)

			setOrientation(dt, south)
			local, err := dt.MotorVels(translation, r3.Vector{}, true)
			Expect(err).NotTo(HaveOccurred())
			expectVels(local, vels, 1e-9)
		},
		Entry("diagonal", r3.Vector{X: half, Y: half}, []float64{0, 1, 0, -1, 0, 0}),
		Entry("forward", r3.Vector{Y: 1}, []float64{half, half, -half, -half, 0, 0}),
		Entry("up", r3.Vector{Z: 1}, []float64{0, 0, 0, 0, 1, 1}),
	)

	DescribeTable("translation facing south",
		func(translation r3.Vector, expected []float64) {
			setOrientation(dt, south)
			vels, err := dt.MotorVels(translation, r3.Vector{}, false)
			Expect(err).NotTo(HaveOccurred())
			expectVels(vels, expected, 1e-9)
		},
		Entry("diagonal", r3.Vector{X: half, Y: half}, []float64{0, -1, 0, 1, 0, 0}),
		Entry("forward", r3.Vector{Y: 1}, []float64{-half, -half, half, half, 0, 0}),
		Entry("up", r3.Vector{Z: 1}, []float64{0, 0, 0, 0, 1, 1}),
	)

	DescribeTable("yaw rotation",
		func(rotation r3.Vector, expected []float64) {
			setOrientation(dt, north)
			vels, err := dt.MotorVels(r3.Vector{}, rotation, false)
			Expect(err).NotTo(HaveOccurred())
			expectVels(vels, expected, 0.02)

			setOrientation(dt, south)
			local, err := dt.MotorVels(r3.Vector{}, rotation, true)
			Expect(err).NotTo(HaveOccurred())
			expectVels(local, expected, 0.02)
		},
		Entry("ccw", r3.Vector{Z: 1}, []float64{1, -1, 1, -1, 0, 0}),
		Entry("cw", r3.Vector{Z: -1}, []float64{-1, 1, -1, 1, 0, 0}),
	)

	It("ignores heading for rotation", func() {
		setOrientation(dt, south)
		vels, err := dt.MotorVels(r3.Vector{}, r3.Vector{Z: 1}, false)
		Expect(err).NotTo(HaveOccurred())
		expectVels(vels, []float64{1, -1, 1, -1, 0, 0}, 1e-9)
	})

	It("pitches with the vertical thrusters", func() {
		vels, err := dt.MotorVels(r3.Vector{}, r3.Vector{X: 1}, true)
		Expect(err).NotTo(HaveOccurred())
		expectVels(vels, []float64{0, 0, 0, 0, 1, -1}, 1e-9)
	})

	It("keeps output in insertion order", func() {
		vels, err := dt.MotorVels(r3.Vector{Y: 1}, r3.Vector{}, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(vels).To(HaveLen(dt.Len()))
		Expect(dt.Names()).To(Equal([]string{"fr", "fl", "bl", "br", "fu", "bu"}))
	})
})

var _ = Describe("Saturation", func() {
	It("rescales uniformly instead of clipping", func() {
		dt := drivetrain.New()
		_, err := dt.AddMotor("a", r3.Vector{X: 1}, r3.Vector{X: 1}, false, pwmStd)
		Expect(err).NotTo(HaveOccurred())
		_, err = dt.AddMotor("b", r3.Vector{Y: 1}, r3.Vector{Y: -1}, false, pwmStd)
		Expect(err).NotTo(HaveOccurred())

		vels, err := dt.MotorVels(r3.Vector{X: 2, Y: 1}, r3.Vector{}, true)
		Expect(err).NotTo(HaveOccurred())
		expectVels(vels, []float64{1, -0.5}, 1e-12)
	})

	It("leaves in-range mixes alone", func() {
		dt := drivetrain.New()
		_, err := dt.AddMotor("a", r3.Vector{X: 1}, r3.Vector{X: 1}, false, pwmStd)
		Expect(err).NotTo(HaveOccurred())

		vels, err := dt.MotorVels(r3.Vector{X: 0.25}, r3.Vector{}, true)
		Expect(err).NotTo(HaveOccurred())
		expectVels(vels, []float64{0.25}, 1e-12)
	})
})

var _ = Describe("Scaled commands", func() {
	var dt *drivetrain.Drivetrain

	BeforeEach(func() {
		dt = drivetrain.New()
		_, err := dt.AddMotor("fr", r3.Vector{X: half, Y: half}, r3.Vector{X: -half, Y: half}, false, pwmStd)
		Expect(err).NotTo(HaveOccurred())
	})

	DescribeTable("symmetric bounds",
		func(translation r3.Vector, expected float64) {
			cmds, err := dt.MotorVelsScaled(translation, r3.Vector{}, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(cmds).To(HaveLen(1))
			Expect(cmds[0]).To(BeNumerically("~", expected, 1e-9))
		},
		Entry("full reverse", r3.Vector{X: half, Y: -half}, 1100.0),
		Entry("stop", r3.Vector{}, 1500.0),
		Entry("full forward", r3.Vector{X: -half, Y: half}, 1900.0),
	)

	It("uses a motor's scaling func", func() {
		m, err := dt.MotorByIndex(0)
		Expect(err).NotTo(HaveOccurred())
		m.SetScalingFunc(func(v float64) float64 { return 10 * v })

		cmds, err := dt.MotorVelsScaled(r3.Vector{X: -half, Y: half}, r3.Vector{}, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(cmds[0]).To(BeNumerically("~", 10, 1e-9))
	})
})

var _ = Describe("Empty drivetrain", func() {
	It("refuses to mix", func() {
		dt := drivetrain.New()
		_, err := dt.MotorVels(r3.Vector{X: 1}, r3.Vector{}, false)
		Expect(err).To(MatchError(drivetrain.ErrEmptyDrivetrain))

		_, err = dt.MotorVelsScaled(r3.Vector{X: 1}, r3.Vector{}, false)
		Expect(err).To(MatchError(drivetrain.ErrEmptyDrivetrain))
	})
})

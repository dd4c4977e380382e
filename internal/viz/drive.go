package viz

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/golang/geo/r3"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/holodrive/internal/drivetrain"
)

const (
	driveStep   = 0.1
	headingStep = math.Pi / 36
	historySize = 60
)

// DriveModel is an interactive view of a drivetrain. Every key press updates
// the command and mixes it again.
type DriveModel struct {
	name        string
	dt          *drivetrain.Drivetrain
	translation r3.Vector
	rotation    r3.Vector
	local       bool
	vels, cmds  []float64
	err         error
	effort      []float64
	theme       int
	canvas      *Canvas
	width       int
	height      int
}

func NewDriveModel(name string, dt *drivetrain.Drivetrain) DriveModel {
	m := DriveModel{
		name:   name,
		dt:     dt,
		canvas: NewCanvas(40, 16),
		width:  100,
		height: 30,
	}
	m.remix()
	return m
}

func (m DriveModel) Translation() r3.Vector { return m.translation }
func (m DriveModel) Rotation() r3.Vector    { return m.rotation }
func (m DriveModel) Local() bool            { return m.local }
func (m DriveModel) Velocities() []float64  { return m.vels }
func (m DriveModel) Commands() []float64    { return m.cmds }
func (m DriveModel) Err() error             { return m.err }
func (m DriveModel) Theme() Theme           { return Themes[m.theme] }

func (m DriveModel) Init() tea.Cmd { return nil }

func (m DriveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "w":
			m.translation.Y = nudge(m.translation.Y, driveStep)
		case "s":
			m.translation.Y = nudge(m.translation.Y, -driveStep)
		case "d":
			m.translation.X = nudge(m.translation.X, driveStep)
		case "a":
			m.translation.X = nudge(m.translation.X, -driveStep)
		case "r":
			m.translation.Z = nudge(m.translation.Z, driveStep)
		case "f":
			m.translation.Z = nudge(m.translation.Z, -driveStep)
		case "q":
			m.rotation.Z = nudge(m.rotation.Z, driveStep)
		case "e":
			m.rotation.Z = nudge(m.rotation.Z, -driveStep)
		case "left":
			m.turn(headingStep)
		case "right":
			m.turn(-headingStep)
		case "o":
			m.local = !m.local
		case " ":
			m.translation, m.rotation = r3.Vector{}, r3.Vector{}
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
		default:
			return m, nil
		}
		m.remix()
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.canvas = NewCanvas(max(msg.Width/2-4, 10), max(msg.Height-12, 4))
	}
	return m, nil
}

// nudge steps v and keeps it in [-1, 1], snapping near-zero values to zero.
func nudge(v, step float64) float64 {
	v = math.Max(-1, math.Min(1, v+step))
	if math.Abs(v) < 1e-9 {
		return 0
	}
	return v
}

func (m *DriveModel) turn(delta float64) {
	o := m.dt.Orientation()
	yaw := math.Mod(o.Z+delta, 2*math.Pi)
	if yaw < 0 {
		yaw += 2 * math.Pi
	}
	m.dt.SetOrientation(o.X, o.Y, yaw)
}

func (m *DriveModel) remix() {
	m.vels, m.err = m.dt.MotorVels(m.translation, m.rotation, m.local)
	if m.err != nil {
		m.cmds = nil
		return
	}
	m.cmds, m.err = m.dt.MotorVelsScaled(m.translation, m.rotation, m.local)

	sum := 0.0
	for _, v := range m.vels {
		sum += math.Abs(v)
	}
	m.effort = append(m.effort, sum)
	if len(m.effort) > historySize {
		m.effort = m.effort[len(m.effort)-historySize:]
	}
}

func (m DriveModel) View() string {
	s := m.Theme().Styles()

	DrawRig(m.canvas, m.dt, m.vels)
	rigView := s.Panel.Render(m.canvas.String())

	var b strings.Builder
	b.WriteString(s.Header.Render(strings.ToUpper(m.name)) + "\n")

	frame := "FIELD"
	if m.local {
		frame = "LOCAL"
	}
	yaw := m.dt.Orientation().Z
	b.WriteString(s.Label.Render("Frame") + s.Value.Render(frame) + "\n")
	b.WriteString(s.Label.Render("Heading") + s.Value.Render(fmt.Sprintf("%.1f°", yaw*180/math.Pi)) + "\n")
	b.WriteString(s.Label.Render("Move") + s.Value.Render(fmt.Sprintf("%+.1f %+.1f %+.1f", m.translation.X, m.translation.Y, m.translation.Z)) + "\n")
	b.WriteString(s.Label.Render("Yaw") + s.Value.Render(fmt.Sprintf("%+.1f", m.rotation.Z)) + "\n\n")

	if m.err != nil {
		b.WriteString(s.Warning.Render(m.err.Error()) + "\n")
	} else {
		b.WriteString(renderMix(m.dt.Names(), m.vels, m.cmds, s))
	}

	if len(m.effort) > 1 {
		chart := asciigraph.Plot(m.effort, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Effort"))
		b.WriteString("\n" + chart + "\n")
	}

	b.WriteString(s.Help.Render("\nw/s a/d r/f:move  q/e:yaw  ←/→:heading\no:frame  space:stop  t:theme  esc:quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, rigView, "  "+strings.ReplaceAll(b.String(), "\n", "\n  "))
}

// RunDrive opens the drive view full screen until the user quits.
func RunDrive(name string, dt *drivetrain.Drivetrain) error {
	_, err := tea.NewProgram(NewDriveModel(name, dt), tea.WithAltScreen()).Run()
	return err
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridraw/pkg/graph"
	"github.com/matzehuels/gridraw/pkg/pipeline"
	"github.com/matzehuels/gridraw/pkg/placement"
	"github.com/matzehuels/gridraw/pkg/planar"
)

var (
	stepCurrentStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	stepRunStyle     = lipgloss.NewStyle().Foreground(colorGreen)
	stepPlacedStyle  = lipgloss.NewStyle().Foreground(colorWhite)
)

// stepsCommand creates the steps command, which replays a traced run.
func (c *CLI) stepsCommand() *cobra.Command {
	var (
		instance instanceFlags
		alg      string
		plain    bool
	)

	cmd := &cobra.Command{
		Use:   "steps [file.steps.json]",
		Short: "Replay a placement run step by step",
		Long: `Replay a placement run of Algorithm A or B step by step.

The run is read from a steps file written by "gridraw draw --trace", or
computed from the instance flags. Use left/right to move between steps,
home/end to jump, and q to quit. --plain prints a table instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				run *placement.Run
				err error
			)
			if len(args) == 1 {
				run, err = readRun(args[0])
			} else {
				run, err = c.traceRun(cmd.Context(), &instance, alg)
			}
			if err != nil {
				return err
			}
			if len(run.Steps) == 0 {
				return fmt.Errorf("run has no recorded steps")
			}
			if plain {
				c.printTable([]string{"k", "vertex", "neighbors", "placed", "final", "shifted", "contour"}, stepRows(run))
				return nil
			}
			_, err = tea.NewProgram(newStepsModel(run), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	instance.register(cmd)
	cmd.Flags().StringVarP(&alg, "algorithm", "a", pipeline.DefaultAlgorithm, "placement method: a or b")
	cmd.Flags().BoolVar(&plain, "plain", false, "print the steps as a table")
	return cmd
}

func readRun(path string) (*placement.Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var run placement.Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &run, nil
}

func (c *CLI) traceRun(ctx context.Context, instance *instanceFlags, alg string) (*placement.Run, error) {
	if alg == graph.AlgorithmShift {
		return nil, fmt.Errorf("the shift method records no steps; use -a a or -a b")
	}
	opts := pipeline.Options{Algorithm: alg, Trace: true}
	if err := instance.apply(&opts); err != nil {
		return nil, err
	}
	runner, err := c.newRunner(ctx, nil, false)
	if err != nil {
		return nil, err
	}
	defer runner.Close(context.Background())

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		return nil, err
	}
	return res.Run, nil
}

// stepRows lists each step with the position a vertex was placed at and
// the position it ends at after later shifts.
func stepRows(run *placement.Run) [][]string {
	rows := make([][]string, len(run.Steps))
	for i, s := range run.Steps {
		shifted, final := "", ""
		if s.Shifted {
			shifted = "yes"
		}
		if p, ok := run.Positions[s.Vertex]; ok {
			final = p.String()
		}
		rows[i] = []string{
			strconv.Itoa(s.Index), strconv.Itoa(s.Vertex), joinInts(s.Neighbors),
			s.Position.String(), final, shifted, joinInts(s.Contour),
		}
	}
	return rows
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, " ")
}

// =============================================================================
// stepsModel - Interactive step replay
// =============================================================================

// stepsModel is the bubbletea model of the step replay.
type stepsModel struct {
	run    *placement.Run
	cursor int
}

func newStepsModel(run *placement.Run) stepsModel {
	return stepsModel{run: run}
}

func (m stepsModel) Init() tea.Cmd {
	return nil
}

func (m stepsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	last := len(m.run.Steps) - 1
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h", "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l", "down", "j", " ":
		if m.cursor < last {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = last
	}
	return m, nil
}

func (m stepsModel) View() string {
	s := m.run.Steps[m.cursor]
	var b strings.Builder

	b.WriteString(styleTitle.Render(fmt.Sprintf("Algorithm %s: step %d/%d", strings.ToUpper(string(m.run.Algorithm)), m.cursor+1, len(m.run.Steps))))
	b.WriteString("\n")
	b.WriteString(styleDim.Render("←/→ step  home/end jump  q quit"))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s %d at %s", styleKey.Render("vertex"), s.Vertex, s.Position)
	if s.Shifted {
		b.WriteString(styleWarning.Render("  shifted"))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", styleKey.Render("neighbors"), joinInts(s.Neighbors))
	fmt.Fprintf(&b, "%s %s\n\n", styleKey.Render("contour"), joinInts(s.Contour))

	if s.Positions != nil {
		b.WriteString(gridView(s.Positions, s.Vertex, s.Neighbors, true))
	} else {
		b.WriteString(styleDim.Render("(no position snapshot)"))
		b.WriteString("\n")
	}
	return b.String()
}

// gridView draws the placed vertices on a character grid with y growing
// upwards. The current vertex and its run of neighbors are highlighted
// when styled is set.
func gridView(pos planar.Positions, current int, run []int, styled bool) string {
	if len(pos) == 0 {
		return ""
	}
	minP, maxP := pos.Bounds()
	cell := len(strconv.Itoa(maxVertex(pos))) + 1

	at := make(map[planar.Point]int, len(pos))
	for v, p := range pos {
		at[p] = v
	}
	inRun := make(map[int]bool, len(run))
	for _, w := range run {
		inRun[w] = true
	}

	var b strings.Builder
	for y := maxP.Y; y >= minP.Y; y-- {
		fmt.Fprintf(&b, "%3d │", y)
		for x := minP.X; x <= maxP.X; x++ {
			v, ok := at[planar.Point{X: x, Y: y}]
			if !ok {
				b.WriteString(fmt.Sprintf("%*s", cell, "·"))
				continue
			}
			label := fmt.Sprintf("%*d", cell, v)
			if styled {
				switch {
				case v == current:
					label = stepCurrentStyle.Render(label)
				case inRun[v]:
					label = stepRunStyle.Render(label)
				default:
					label = stepPlacedStyle.Render(label)
				}
			}
			b.WriteString(label)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func maxVertex(pos planar.Positions) int {
	m := 0
	for v := range pos {
		m = max(m, v)
	}
	return m
}

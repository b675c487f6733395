package graph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/fpgaflow/pkg/domain"
)

// maxListedInputs is the number of inputs drawn individually before they are grouped into one node.
const maxListedInputs = 3

// Plan is the stage list of one operation.
type Plan struct {
	Operation domain.Operation
	Stages    []domain.Stage
}

// GraphOverlay contains run results to visualize on the graph.
type GraphOverlay struct {
	CompletedStages []domain.StageName
	FailedStage     domain.StageName
}

// GenerateMermaid produces a Mermaid flowchart of the given plans.
// It applies semantic styling:
// - Stage: [[Subroutine]]
// - Input file (not produced by any stage): [/Parallelogram/]
// - Produced artifact: [Rectangle]
// It also applies overlay styles (Completed/Failed) if provided.
func GenerateMermaid(plans []Plan, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	produced := make(map[string]bool)
	for _, plan := range plans {
		for _, st := range plan.Stages {
			if st.Output != "" {
				produced[st.Output] = true
			}
		}
	}

	declared := make(map[string]bool)
	declareFile := func(name string) string {
		id := "f_" + sanitizeMermaidID(name)
		if !declared[id] {
			declared[id] = true
			if produced[name] {
				sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", id, name))
			} else {
				sb.WriteString(fmt.Sprintf("    %s[/\"%s\"/]\n", id, name))
			}
		}
		return id
	}

	for _, plan := range plans {
		sb.WriteString(fmt.Sprintf("    subgraph %s\n", sanitizeMermaidID(string(plan.Operation))))
		for _, st := range plan.Stages {
			stageID := stageNodeID(st.Name)
			sb.WriteString(fmt.Sprintf("    %s[[\"%s <br/> %s\"]]\n", stageID, st.Name, st.Tool))

			if len(st.Inputs) > maxListedInputs {
				groupID := stageID + "_inputs"
				if !declared[groupID] {
					declared[groupID] = true
					sb.WriteString(fmt.Sprintf("    %s[/\"%s (%d files)\"/]\n", groupID, st.Inputs[0], len(st.Inputs)))
				}
				sb.WriteString(fmt.Sprintf("    %s --> %s\n", groupID, stageID))
			} else {
				for _, in := range st.Inputs {
					sb.WriteString(fmt.Sprintf("    %s --> %s\n", declareFile(in), stageID))
				}
			}

			if st.Output != "" {
				sb.WriteString(fmt.Sprintf("    %s --> %s\n", stageID, declareFile(st.Output)))
			}
		}
		sb.WriteString("    end\n")
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef completed fill:#e8f5e9,stroke:#2e7d32,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef failed fill:#ffebee,stroke:#c62828,stroke-width:4px,color:#000;\n")

		done := slices.Clone(overlay.CompletedStages)
		slices.Sort(done)
		for _, name := range slices.Compact(done) {
			sb.WriteString(fmt.Sprintf("    class %s completed;\n", stageNodeID(name)))
		}
		if overlay.FailedStage != "" {
			sb.WriteString(fmt.Sprintf("    class %s failed;\n", stageNodeID(overlay.FailedStage)))
		}
	}

	return sb.String()
}

func stageNodeID(name domain.StageName) string {
	return "s_" + sanitizeMermaidID(string(name))
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}

package commands

import (
	"flag"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/backkem/matter-binding/pkg/binding"
)

// ListOutput is the YAML form of the binding table.
type ListOutput struct {
	Capacity int             `yaml:"capacity"`
	Size     int             `yaml:"size"`
	Bindings []BindingOutput `yaml:"bindings"`
}

// BindingOutput is one binding in list order.
type BindingOutput struct {
	Position       int     `yaml:"position"`
	Slot           uint8   `yaml:"slot"`
	Type           string  `yaml:"type"`
	Fabric         uint8   `yaml:"fabric"`
	LocalEndpoint  uint16  `yaml:"local_endpoint"`
	Cluster        *uint32 `yaml:"cluster,omitempty"`
	Node           *uint64 `yaml:"node,omitempty"`
	RemoteEndpoint *uint16 `yaml:"remote_endpoint,omitempty"`
	Group          *uint16 `yaml:"group,omitempty"`
}

func newBindingOutput(position int, slot uint8, e binding.Entry) BindingOutput {
	out := BindingOutput{
		Position:      position,
		Slot:          slot,
		Type:          e.Type.String(),
		Fabric:        e.FabricIndex,
		LocalEndpoint: e.LocalEndpoint,
		Cluster:       e.ClusterID,
	}
	switch e.Type {
	case binding.TypeUnicast:
		out.Node = &e.NodeID
		out.RemoteEndpoint = &e.RemoteEndpoint
	case binding.TypeMulticast:
		out.Group = &e.GroupID
	}
	return out
}

// RunList prints the bindings in list order.
func RunList(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts Options
	var asYAML bool
	var fabric uint8
	addCommonFlags(fs, &opts)
	fs.BoolVar(&asYAML, "yaml", false, "Print YAML instead of text")
	uintFlag(fs, "fabric", "Only list bindings of this fabric index", 8, func(v uint64) { fabric = uint8(v) })

	if err := parseArgs(fs, &opts, args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitCommandError
	}

	s, err := openTable(opts.Config, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitCommandError
	}

	output := ListOutput{
		Capacity: s.table.Capacity(),
		Size:     s.table.Size(),
		Bindings: []BindingOutput{},
	}
	position := 0
	for slot, e := range s.table.All() {
		if fabric == 0 || e.FabricIndex == fabric {
			output.Bindings = append(output.Bindings, newBindingOutput(position, slot, e))
		}
		position++
	}

	if asYAML {
		data, err := yaml.Marshal(output)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return ExitCommandError
		}
		fmt.Fprint(stdout, string(data))
		return ExitSuccess
	}

	fmt.Fprintf(stdout, "Bindings: %d/%d\n", output.Size, output.Capacity)
	position = 0
	for slot, e := range s.table.All() {
		if fabric == 0 || e.FabricIndex == fabric {
			fmt.Fprintf(stdout, "  [%3d] slot %3d  %s\n", position, slot, e)
		}
		position++
	}
	return ExitSuccess
}

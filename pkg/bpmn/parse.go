package bpmn

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	errs "github.com/matzehuels/bpmnlayout/pkg/errors"
)

// XML shapes are matched by local name only, so any namespace prefix works.

type xmlDefinitions struct {
	ID             string             `xml:"id,attr"`
	Processes      []xmlProcess       `xml:"process"`
	Collaborations []xmlCollaboration `xml:"collaboration"`
}

type xmlProcess struct {
	ID       string       `xml:"id,attr"`
	Name     string       `xml:"name,attr"`
	LaneSets []xmlLaneSet `xml:"laneSet"`
	Elements []xmlElement `xml:",any"`
}

type xmlLaneSet struct {
	ID    string    `xml:"id,attr"`
	Lanes []xmlLane `xml:"lane"`
}

type xmlLane struct {
	ID           string   `xml:"id,attr"`
	Name         string   `xml:"name,attr"`
	FlowNodeRefs []string `xml:"flowNodeRef"`
}

type xmlElement struct {
	XMLName   xml.Name
	ID        string `xml:"id,attr"`
	Name      string `xml:"name,attr"`
	SourceRef string `xml:"sourceRef,attr"`
	TargetRef string `xml:"targetRef,attr"`
}

type xmlCollaboration struct {
	ID           string           `xml:"id,attr"`
	Name         string           `xml:"name,attr"`
	Participants []xmlParticipant `xml:"participant"`
}

type xmlParticipant struct {
	ID         string `xml:"id,attr"`
	Name       string `xml:"name,attr"`
	ProcessRef string `xml:"processRef,attr"`
}

// ParseFile reads and parses a BPMN document from disk.
func ParseFile(path string) (*Definitions, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a BPMN 2.0 document. Existing diagram interchange is
// discarded. Flow elements that are not flow nodes (documentation,
// associations, data objects without a visual, ...) are skipped.
//
// Parse returns an [errs.ErrCodeInvalidDocument] error when the XML is
// malformed or a process contains duplicate IDs.
func Parse(r io.Reader) (*Definitions, error) {
	var doc xmlDefinitions
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidDocument, err, "decode BPMN XML")
	}

	defs := &Definitions{ID: doc.ID}
	for _, xp := range doc.Processes {
		p, err := buildProcess(xp)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidDocument, err, "process %s", xp.ID)
		}
		if err := defs.AddProcess(p); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidDocument, err, "process %s", xp.ID)
		}
	}

	if len(doc.Collaborations) > 0 {
		xc := doc.Collaborations[0]
		c := &Collaboration{ID: xc.ID, Name: xc.Name}
		for _, xpart := range xc.Participants {
			c.Participants = append(c.Participants, &Participant{
				ID:         xpart.ID,
				Name:       xpart.Name,
				ProcessRef: xpart.ProcessRef,
			})
		}
		defs.SetCollaboration(c)
	}

	return defs, nil
}

func buildProcess(xp xmlProcess) (*Process, error) {
	p := NewProcess(xp.ID, xp.Name)

	// Nodes first so flows can resolve regardless of document order.
	for _, el := range xp.Elements {
		if !IsFlowNodeType(el.XMLName.Local) {
			continue
		}
		if err := p.AddNode(FlowNode{ID: el.ID, Name: el.Name, Type: el.XMLName.Local}); err != nil {
			return nil, fmt.Errorf("node %q: %w", el.ID, err)
		}
	}
	for _, el := range xp.Elements {
		if el.XMLName.Local != "sequenceFlow" {
			continue
		}
		err := p.AddFlow(SequenceFlow{
			ID:        el.ID,
			Name:      el.Name,
			SourceRef: strings.TrimSpace(el.SourceRef),
			TargetRef: strings.TrimSpace(el.TargetRef),
		})
		if err != nil {
			return nil, fmt.Errorf("flow %q: %w", el.ID, err)
		}
	}

	for _, xls := range xp.LaneSets {
		ls := &LaneSet{ID: xls.ID}
		for _, xl := range xls.Lanes {
			lane := &Lane{ID: xl.ID, Name: xl.Name}
			for _, ref := range xl.FlowNodeRefs {
				if ref = strings.TrimSpace(ref); ref != "" {
					lane.FlowNodeRefs = append(lane.FlowNodeRefs, ref)
				}
			}
			ls.Lanes = append(ls.Lanes, lane)
		}
		p.LaneSets = append(p.LaneSets, ls)
	}

	return p, nil
}

// IsFlowNodeType reports whether a local element name denotes something the
// layout places as a shape.
func IsFlowNodeType(local string) bool {
	t := strings.ToLower(local)
	switch {
	case strings.HasSuffix(t, "task"),
		strings.HasSuffix(t, "event"),
		strings.HasSuffix(t, "gateway"),
		strings.HasSuffix(t, "subprocess"):
		return true
	}
	switch t {
	case "callactivity", "transaction", "dataobjectreference", "datastorereference":
		return true
	}
	return false
}

package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/gogpu/cl"
	"github.com/gogpu/cl/ll"
)

func (st *state) probe(c *cli.Context) (err error) {
	defer recoverDiscovery(&err)

	size := st.cfg.Probe.BufferSize
	if c.IsSet(sizeFlag.Name) {
		size = c.Int(sizeFlag.Name)
	}
	queue := st.cfg.Probe.Queue
	if c.IsSet(queueFlag.Name) {
		queue = c.String(queueFlag.Name)
	}
	props, err := parseQueueProperties(queue)
	if err != nil {
		return err
	}

	failed := 0
	for i, p := range cl.Platforms() {
		devices := p.DevicesOfType(st.filter)
		label := fmt.Sprintf("Platform #%d (%s, %d devices)", i, p.Name(), len(devices))
		if len(devices) == 0 {
			fmt.Fprintf(st.stdout, "%s: skipped, no matching devices\n", label)
			continue
		}
		if err := probePlatform(p, devices, size, props); err != nil {
			failed++
			fmt.Fprintf(st.stdout, "%s: %s %v\n", label, failColor("FAIL"), err)
			continue
		}
		fmt.Fprintf(st.stdout, "%s: %s\n", label, okColor("ok"))
	}

	if failed > 0 {
		return cli.Exit(fmt.Sprintf("probe failed on %d platform(s)", failed), 1)
	}
	return nil
}

// probePlatform creates and releases a context, one buffer and one queue
// per device.
func probePlatform(p cl.Platform, devices []cl.Device, size int, props ll.CommandQueueProperties) error {
	ctx, err := p.CreateContext(devices...)
	if err != nil {
		return fmt.Errorf("create context: %w", err)
	}
	defer ctx.Release()

	buf, err := ctx.CreateBuffer(ll.ReadWrite, size)
	if err != nil {
		return fmt.Errorf("create %d byte buffer: %w", size, err)
	}
	defer buf.Release()

	for _, d := range devices {
		q, err := ctx.CreateQueue(d, props)
		if err != nil {
			return fmt.Errorf("create queue on %s: %w", d.Name(), err)
		}
		q.Release()
	}
	return nil
}

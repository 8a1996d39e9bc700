// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/dither/backend"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ErrNoAdapter is returned by Open when no usable GPU adapter exists.
var ErrNoAdapter = errors.New("wgpu: no GPU adapter")

// NewFromProvider creates an executor on the device of a host application.
//
// The provider should implement HalDevice() any and HalQueue() any returning
// hal.Device and hal.Queue. The device stays owned by the provider.
func NewFromProvider(provider gpucontext.DeviceProvider) (*Executor, error) {
	hp, ok := provider.(interface {
		HalDevice() any
		HalQueue() any
	})
	if !ok {
		return nil, fmt.Errorf("wgpu: provider does not expose HAL device")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok {
		return nil, fmt.Errorf("wgpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok {
		return nil, fmt.Errorf("wgpu: provider HalQueue is not hal.Queue")
	}
	return NewExecutor(device, queue)
}

// Open creates an executor on a standalone device of the best registered
// backend. The empty backend is not accepted since it renders nothing.
func Open() (*Executor, error) {
	b, err := hal.SelectBestBackend()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoAdapter, err)
	}
	if b.Variant() == gputypes.BackendEmpty {
		return nil, fmt.Errorf("%w: only the empty backend is registered", ErrNoAdapter)
	}

	instance, err := b.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}

	selected := &adapters[0]
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}

	e, err := NewExecutor(openDev.Device, openDev.Queue)
	if err != nil {
		openDev.Device.Destroy()
		instance.Destroy()
		return nil, err
	}
	e.closer = func() {
		_ = openDev.Device.WaitIdle()
		openDev.Device.Destroy()
		instance.Destroy()
	}
	backend.Logger().Info("wgpu: GPU initialized (standalone)",
		"backend", b.Variant().String(),
		"adapter", selected.Info.Name)
	return e, nil
}

// Package sensing exposes vendor hardware sensors behind a backend whose
// presence is decided once at process start. Consumers read a vendor-neutral
// device and sensor view; the only vendor wired in today is NVML.
package sensing

import "errors"

// DeviceType classifies an enumerated hardware device.
type DeviceType string

const (
	DeviceGPUNvidia DeviceType = "gpu-nvidia"
	DeviceGPUAMD    DeviceType = "gpu-amd"
	DeviceGPUIntel  DeviceType = "gpu-intel"
	DeviceOther     DeviceType = "other"
)

// IsGPU reports whether the device is a graphics processor of any vendor.
func (t DeviceType) IsGPU() bool {
	switch t {
	case DeviceGPUNvidia, DeviceGPUAMD, DeviceGPUIntel:
		return true
	}
	return false
}

// SensorType classifies a sensor reading.
type SensorType string

const (
	SensorLoad        SensorType = "load"
	SensorTemperature SensorType = "temperature"
	SensorClock       SensorType = "clock"
	SensorPower       SensorType = "power"
	SensorFan         SensorType = "fan"
)

// Sensor is a single named reading on a device. Valid is false when the
// sensor exists but produced no value on this pass; consumers must skip
// invalid sensors.
type Sensor struct {
	Name  string
	Type  SensorType
	Value float64
	Valid bool
}

// Device is one enumerated hardware device with its sensors in backend
// order.
type Device struct {
	Name    string
	Type    DeviceType
	Sensors []Sensor
}

// Backend enumerates hardware devices with live sensor readings. Whether a
// backend is available is fixed at startup; a failed Devices call is
// transient and does not revoke availability.
type Backend interface {
	// Available reports the capability decision made at startup.
	Available() bool

	// Devices re-reads every device and sensor, never serving cached
	// values.
	Devices() ([]Device, error)

	// Close releases vendor resources. Safe to call more than once.
	Close() error
}

// ErrUnavailable is returned by Devices on a backend that was absent at
// startup.
var ErrUnavailable = errors.New("sensing: backend unavailable")

type absentBackend struct{}

// Absent returns the no-capability backend used when no vendor library was
// found at startup.
func Absent() Backend { return absentBackend{} }

func (absentBackend) Available() bool            { return false }
func (absentBackend) Devices() ([]Device, error) { return nil, ErrUnavailable }
func (absentBackend) Close() error               { return nil }

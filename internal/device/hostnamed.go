package device

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	hostnameBusName   = "org.freedesktop.hostname1"
	hostnamePath      = "/org/freedesktop/hostname1"
	hostnameInterface = "org.freedesktop.hostname1"
)

// chassisClasses maps systemd-hostnamed chassis types to device classes.
var chassisClasses = map[string]Class{
	"handset":     Phone,
	"tablet":      Pad,
	"tv":          TV,
	"desktop":     Desktop,
	"laptop":      Desktop,
	"convertible": Desktop,
	"server":      Desktop,
	"vm":          Desktop,
	"container":   Desktop,
	"watch":       Unknown,
	"embedded":    Unknown,
}

// ClassForChassis maps a hostnamed chassis string to a device class.
// Empty or unrecognised chassis types map to Unknown.
func ClassForChassis(chassis string) Class {
	if c, ok := chassisClasses[chassis]; ok {
		return c
	}
	return Unknown
}

// DetectClass asks systemd-hostnamed over the system bus for the chassis type.
// On failure it returns Unknown together with the error so the caller can log
// it and carry on with the phone defaults.
func DetectClass(ctx context.Context) (Class, error) {
	conn, err := dbus.ConnectSystemBus(dbus.WithContext(ctx))
	if err != nil {
		return Unknown, fmt.Errorf("failed to connect to system bus: %w", err)
	}
	defer func() { _ = conn.Close() }()

	obj := conn.Object(hostnameBusName, hostnamePath)
	variant, err := obj.GetProperty(hostnameInterface + ".Chassis")
	if err != nil {
		return Unknown, fmt.Errorf("failed to read chassis: %w", err)
	}

	chassis, ok := variant.Value().(string)
	if !ok {
		return Unknown, fmt.Errorf("unexpected chassis type %s", variant.Signature())
	}

	return ClassForChassis(chassis), nil
}

/*
Package device answers the shell's questions about the machine: battery,
network, Wi-Fi quality, storage, display, Bluetooth, media devices,
geolocation and general host info.

Each capability is read through a probe. Host probes read Linux sysfs,
/dev, gopsutil and an optional IP geolocation service; the display is
whatever the browser last reported. The Adapter never fails a query: a
missing probe, a probe error or a probe panic all produce the documented
fallback with Supported set to false.

	adapter := device.NewAdapter(device.NewHostProbes(cfg.Device, display, logger), logger)
	battery := adapter.Battery(ctx)

	cancel := adapter.SubscribeBattery(func(b device.Battery) { ... })
	defer cancel()
*/
package device

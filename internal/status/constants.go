// internal/status/constants.go
package status

// Wire and status block constants.
// These values define the protocol and MUST NOT be configurable.

// ---- CHANNELS ----

// Channels is the number of monitored inputs per device.
// Channel 1 is bit 0 of every per-channel register.
const Channels = 8

// ByteWidth is the number of ASCII characters in a byte payload.
const ByteWidth = 8

// WordWidth is the number of ASCII characters in a word payload.
const WordWidth = 16

// ---- BLOCK GEOMETRY ----

// SlotsPerDevice is the fixed number of logical slots per device in the status mirror.
const SlotsPerDevice = 20

// ---- SLOT INDICES ----

// SlotHealthCode holds the link health to the relay electronics.
const SlotHealthCode = 0

// SlotActive holds 1 while the interlock is armed.
const SlotActive = 1

// SlotFaultRegister holds the latched fault register (low byte).
const SlotFaultRegister = 2

// SlotStatusWord holds the last current status word.
const SlotStatusWord = 3

// SlotLastAction holds the code of the last dispatched action.
const SlotLastAction = 4

// SlotSecondsTripped holds how long (in seconds) the interlock has been open.
const SlotSecondsTripped = 5

// ---- RESERVED RANGE ----

// Slots 6-10 are reserved for future use.
const SlotReservedStart = 6
const SlotReservedEnd = 10

// ---- DEVICE NAME ----

// SlotDeviceNameStart is the first slot used for the device name.
const SlotDeviceNameStart = 11

// SlotDeviceNameSlots is the number of slots reserved for the device name.
const SlotDeviceNameSlots = 8

// SlotDeviceNameEnd is the last slot used for the device name (inclusive).
const SlotDeviceNameEnd = SlotDeviceNameStart + SlotDeviceNameSlots - 1

// ---- LIMITS ----

// DeviceNameMaxChars is the maximum number of ASCII characters stored for device name.
const DeviceNameMaxChars = 16

// ---- HEALTH CODES ----

// HealthUnknown represents a boot state before the first sample.
const HealthUnknown uint16 = 0

// HealthOK means the last hardware sample succeeded.
const HealthOK uint16 = 1

// HealthError means the last hardware sample failed.
const HealthError uint16 = 2

package storage

import "fmt"

// Key names follow the Matter SDK's default storage key allocator so that
// records written here are laid out the same way on every platform.
const (
	bindingTableKey = "g/bt"
)

// BindingTableKey is the key of the binding list-info record.
func BindingTableKey() string {
	return bindingTableKey
}

// BindingTableEntryKey is the key of the binding record stored in slot index.
func BindingTableEntryKey(index uint8) string {
	return fmt.Sprintf("%s/%x", bindingTableKey, index)
}

// BindingTablePrefix is the prefix shared by the list-info record and all
// entry records.
func BindingTablePrefix() string {
	return bindingTableKey
}

// Package sync implements the bidirectional reconciliation engine
// between WhatsUp Gold and Infoblox.
//
// # Forward pass (WUG -> Infoblox)
//
// RunSync fetches the device inventory, maps each device onto a host
// record (DeviceToHostRecord) and asks the Infoblox gateway to upsert
// it. The gateway decides create vs update by looking the FQDN up, and
// recognizes dry runs itself, so the engine's control flow never
// branches on mode.
//
// # Reverse pass (Infoblox -> WUG)
//
// RunReverseSync fetches host records and creates the missing devices
// in WUG. Records without a hostname or IP are skipped, as are records
// whose address already belongs to a device. The existence set is
// fetched once per run and kept current as devices are created.
//
// # Failure isolation
//
// Each item's outcome is independent: mapping or gateway failures are
// caught, recorded in the result details, counted, and the loop moves
// on. One bad device never aborts the batch. The only exceptions are
// systemic: authentication failures and collection-fetch failures abort
// the whole run, because nothing after them could succeed.
package sync

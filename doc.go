// Package discord provides the Discord side of a two-way chat relay.
//
// A Pier converts Discord events into platform-neutral message.Message values and hands
// them to a Bridge, and delivers messages coming from the Bridge to Discord, either through
// a per-channel webhook that impersonates the original sender or as the bot account with
// the sender's name prefixed. Messages the Pier itself produced are recognized and dropped
// so that nothing is relayed twice.
//
// Pier also implements sarah.Adapter so bridged messages can drive go-sarah commands.
package discord

// Package inventory manages the stock of a warehouse.
//
// A Manager holds one repository per category of items, Electronic and Grocery.
// The operations PrintAllItems, IncreaseStock and RemoveItemByID work on any
// category and never fail: every outcome is returned as a Report.
package inventory

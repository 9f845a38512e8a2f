package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"whispr/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/database"
	"github.com/olekukonko/tablewriter"
)

// Scans one collection of the store and prints its documents. Values
// are JSON; the collection is inferred from the key prefix.
func main() {
	dbPath := flag.String("db", database.DefaultPath, "Path to badger DB")
	prefix := flag.String("prefix", "user:", "Prefix to scan (user:, shortid:, chat:, chatmsg:, group:, groupmsg:)")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Type", "Detail"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			key := string(item.Key())

			err := item.Value(func(v []byte) error {
				docType, detail := describe(key, v)
				table.Append([]string{key, docType, detail})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}

func describe(key string, value []byte) (string, string) {
	switch {
	case strings.HasPrefix(key, "user:"):
		var u domain.User
		if err := json.Unmarshal(value, &u); err != nil {
			return "USER", fmt.Sprintf("unmarshal error: %v", err)
		}
		return "USER", fmt.Sprintf("%s (%s) online=%t connections=%d groups=%d",
			u.DisplayName, u.ShortID, u.Online, len(u.Connections), len(u.Groups))
	case strings.HasPrefix(key, "shortid:"):
		return "INDEX", string(value)
	case strings.HasPrefix(key, "chatmsg:"), strings.HasPrefix(key, "groupmsg:"):
		var m domain.Message
		if err := json.Unmarshal(value, &m); err != nil {
			return "MESSAGE", fmt.Sprintf("unmarshal error: %v", err)
		}
		return "MESSAGE", fmt.Sprintf("%s @ %s: %s", m.Sender, m.Timestamp, m.Text)
	case strings.HasPrefix(key, "chat:"):
		var c domain.Conversation
		if err := json.Unmarshal(value, &c); err != nil {
			return "CHAT", fmt.Sprintf("unmarshal error: %v", err)
		}
		return "CHAT", fmt.Sprintf("participants=%v last=%q @ %s",
			c.Participants, c.LastMessage, c.LastMessageTime)
	case strings.HasPrefix(key, "group:"):
		var g domain.Group
		if err := json.Unmarshal(value, &g); err != nil {
			return "GROUP", fmt.Sprintf("unmarshal error: %v", err)
		}
		return "GROUP", fmt.Sprintf("%s by %s members=%d last=%q",
			g.Name, g.CreatedBy, len(g.Members), g.LastMessage)
	default:
		return "RAW", string(value)
	}
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true).
		WithValueLogFileSize(10 * 1024 * 1024)

	return badger.Open(opts)
}

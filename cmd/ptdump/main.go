// Command ptdump inspects a packet table store: it lists the declared
// type and record count of a table and can hex-dump a range of raw
// records.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/Berrysoft/hdf5-ext/engine"
)

func main() {
	var (
		storePath = flag.String("store", "", "Path to the store directory")
		tableName = flag.String("table", "", "Table to inspect")
		start     = flag.Uint64("start", 0, "First record to dump")
		count     = flag.Int("n", 0, "Number of records to dump (0 = none)")
	)
	flag.Parse()

	if *storePath == "" || *tableName == "" {
		fmt.Fprintln(os.Stderr, "Usage: ptdump -store <dir> -table <name> [-start i] [-n count]")
		os.Exit(1)
	}

	if err := run(*storePath, *tableName, *start, *count); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(storePath, tableName string, start uint64, count int) error {
	store, err := engine.Open(storePath)
	if err != nil {
		return err
	}
	defer store.Close()

	h, err := store.OpenTable(tableName)
	if err != nil {
		return err
	}
	defer store.CloseTable(h)

	dtype, err := store.DeclaredType(h)
	if err != nil {
		return err
	}
	total, err := store.RecordCount(h)
	if err != nil {
		return err
	}

	fmt.Printf("table:   %s\n", tableName)
	fmt.Printf("dtype:   %s\n", dtype)
	fmt.Printf("stride:  %d bytes\n", dtype.ByteSize())
	fmt.Printf("records: %d\n", total)

	if count <= 0 {
		return nil
	}

	stride := int(dtype.ByteSize())
	buf := make([]byte, count*stride)
	if err := store.Read(h, start, count, buf); err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		fmt.Printf("[%d] %s\n", start+uint64(i), hex.EncodeToString(buf[i*stride:(i+1)*stride]))
	}
	return nil
}

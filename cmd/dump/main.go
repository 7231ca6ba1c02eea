// Dump prints the table of all owned pixels of the Pixels contract deployed
// on a particular Neo blockchain.
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"

	"github.com/pixelchain/pixels-contract/rpc/pixels"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	contractAddress := flag.String("contract", "", "Address of the Pixels contract (LE hex or Neo address)")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *contractAddress == "":
		log.Fatal("missing Pixels contract address")
	}

	pixelsHash, err := parseContractAddress(*contractAddress)
	if err != nil {
		log.Fatal(fmt.Errorf("parse Pixels contract address: %w", err))
	}

	err = _dump(*neoRPCEndpoint, pixelsHash)
	if err != nil {
		log.Fatal(err)
	}
}

func parseContractAddress(s string) (util.Uint160, error) {
	h, err := util.Uint160DecodeStringLE(s)
	if err == nil {
		return h, nil
	}
	return address.StringToUint160(s)
}

func _dump(neoRPCEndpoint string, pixelsHash util.Uint160) error {
	c, err := rpcclient.New(context.Background(), neoRPCEndpoint, rpcclient.Options{})
	if err != nil {
		return fmt.Errorf("init Neo RPC client: %w", err)
	}

	defer c.Close()

	err = c.Init()
	if err != nil {
		return fmt.Errorf("initial RPC server handshake: %w", err)
	}

	inv := invoker.New(c, nil)
	reader := pixels.NewReader(inv, pixelsHash)

	sessID, iter, err := unwrap.SessionIterator(inv.Call(pixelsHash, "tokens"))
	if err != nil {
		return fmt.Errorf("open pixel iterator: %w", err)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCOLOUR\tPRICE\tOWNER")

	err = traversePixels(inv, sessID, iter, func(item stackitem.Item) error {
		rawID, err := item.TryBytes()
		if err != nil {
			return fmt.Errorf("unexpected pixel ID item: %w", err)
		}

		id, ok := new(big.Int).SetString(string(rawID), 10)
		if !ok {
			return fmt.Errorf("non-decimal pixel ID %q", rawID)
		}

		px, err := reader.GetPixel(id)
		if err != nil {
			return fmt.Errorf("get pixel %s: %w", id, err)
		}

		fmt.Fprintf(tw, "%s\t#%s\t%s\t%s\n",
			id, hex.EncodeToString(px.Colour), px.Price, address.Uint160ToString(px.Owner))

		return nil
	})
	if err != nil {
		return err
	}

	return tw.Flush()
}

// traversePixels reads the remote iterator to the end feeding every element
// to f. The server session is terminated afterwards.
func traversePixels(inv *invoker.Invoker, sessID uuid.UUID, iter result.Iterator, f func(stackitem.Item) error) error {
	const pageSize = 64

	defer func() {
		_ = inv.TerminateSession(sessID)
	}()

	for {
		items, err := inv.TraverseIterator(sessID, &iter, pageSize)
		if err != nil {
			return fmt.Errorf("traverse pixel iterator: %w", err)
		}
		if len(items) == 0 {
			return nil
		}

		for i := range items {
			err = f(items[i])
			if err != nil {
				return err
			}
		}
	}
}

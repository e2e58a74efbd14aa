// Packstat compares packing algorithms and sort orders on random rectangles.
package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/depp/texpack/lib/rectpack"

	"github.com/spf13/pflag"
)

const sizeLimit = 1024

type packer struct {
	packer  rectpack.Packer
	order   rectpack.Order
	pageSum int
	fillSum float64
	count   int
}

// packPages packs the rectangles into pages and returns the number of pages
// and the fraction of page area covered by rectangles.
func packPages(p rectpack.Packer, page rectpack.Point, items []rectpack.Item, area int64) (int, float64, error) {
	var pages int
	var pageArea int64
	for queue := items; len(queue) != 0; {
		var bin rectpack.Bin
		bin, queue = rectpack.FillBin(p, page, queue)
		r, ok := bin.Bounds()
		if !ok {
			return 0, 0, fmt.Errorf("rectangle %d does not fit in an empty page", queue[0].Index)
		}
		pages++
		pageArea += int64(r.Dx()) * int64(r.Dy())
	}
	return pages, float64(area) / float64(pageArea), nil
}

func mainE() error {
	maxsizeArg := pflag.Int("maxsize", 32, "maximum size of generated rectangles")
	minsizeArg := pflag.Int("minsize", 1, "minimum size of generated rectangles")
	countArg := pflag.Int("count", 100, "number of generated rectangles")
	iterArg := pflag.Int("iterations", 100, "number of iterations")
	pageArg := pflag.Int("page", 256, "page width and height")
	paddingArg := pflag.Int("padding", 2, "padding between rectangles")
	seedArg := pflag.Int64("seed", 0x1234, "random seed")
	var orders []rectpack.Order
	pflag.Var(newOrderList(&orders), "order", "sort `orders` to compare, comma separated (default all)")
	pflag.Parse()
	if args := pflag.Args(); len(args) != 0 {
		return fmt.Errorf("unexpected argument: %q", args[0])
	}
	iterCount := *iterArg
	if iterCount < 0 {
		iterCount = 0
	}
	pageSize := int32(*pageArg)
	if pageSize < 1 || sizeLimit*16 < pageSize {
		return fmt.Errorf("page size %d is not between 1 and %d", pageSize, sizeLimit*16)
	}
	minsize := int32(*minsizeArg)
	if minsize < 1 || sizeLimit < minsize {
		return fmt.Errorf("minsize %d is not between 1 and %d", minsize, sizeLimit)
	}
	maxsize := int32(*maxsizeArg)
	if maxsize < minsize || sizeLimit < maxsize || pageSize < maxsize {
		return fmt.Errorf("maxsize %d is not between %d and %d", maxsize, minsize, min(sizeLimit, pageSize))
	}
	if *paddingArg < 0 {
		return fmt.Errorf("padding %d is negative", *paddingArg)
	}
	if len(orders) == 0 {
		orders = rectpack.Orders()
	}
	items := make([]rectpack.Item, *countArg)
	sorted := make([]rectpack.Item, len(items))
	rnd := rand.New(rand.NewSource(*seedArg))
	var packers []*packer
	for _, p := range rectpack.AllAlgorithms(int32(*paddingArg)) {
		for _, o := range orders {
			packers = append(packers, &packer{packer: p, order: o})
		}
	}
	page := rectpack.Point{X: pageSize, Y: pageSize}
	for iter := 0; iter < iterCount; iter++ {
		var area int64
		n := maxsize - minsize + 1
		for i := range items {
			sz := rectpack.Point{
				X: minsize + rnd.Int31n(n),
				Y: minsize + rnd.Int31n(n),
			}
			items[i] = rectpack.Item{Index: i, Size: sz}
			area += int64(sz.X) * int64(sz.Y)
		}
		for _, p := range packers {
			copy(sorted, items)
			rectpack.Sort(sorted, p.order)
			pages, fill, err := packPages(p.packer, page, sorted, area)
			if err != nil {
				fmt.Fprintf(os.Stderr, "packer %s failed: %v\n", p.packer.Name(), err)
				continue
			}
			p.pageSum += pages
			p.fillSum += fill
			p.count++
		}
	}
	if _, err := fmt.Println("Algorithm,Order,Pages,Fill"); err != nil {
		return err
	}
	for _, p := range packers {
		if p.count > 0 {
			if _, err := fmt.Printf("%s,%s,%.3f,%.5f\n", p.packer.Name(), p.order,
				float64(p.pageSum)/float64(p.count), p.fillSum/float64(p.count)); err != nil {
				return err
			}
		}
	}
	return nil
}

func main() {
	if err := mainE(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

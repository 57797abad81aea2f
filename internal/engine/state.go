package engine

// AssetBook bundles one market's order book with its matcher.
type AssetBook struct {
	market  Market
	book    *OrderBook
	matcher *Matcher
}

func NewAssetBook(market Market) *AssetBook {
	book := NewOrderBook()
	return &AssetBook{
		market:  market,
		book:    book,
		matcher: NewMatcher(book),
	}
}

func (a *AssetBook) Market() Market   { return a.market }
func (a *AssetBook) Book() *OrderBook { return a.book }

// EngineState is everything the supervisor owns: the set of order ids it has
// ever accepted plus one book per supported market. It is constructed empty,
// populated by bootstrap replay, then mutated by live commands. Only the
// supervisor goroutine touches it.
type EngineState struct {
	seenOrders map[string]struct{}
	btc        *AssetBook
	eth        *AssetBook
}

func NewEngineState() *EngineState {
	return &EngineState{
		seenOrders: make(map[string]struct{}),
		btc:        NewAssetBook(MarketBTCUSD),
		eth:        NewAssetBook(MarketETHUSD),
	}
}

func (s *EngineState) bookFor(market Market) (*AssetBook, error) {
	switch market {
	case MarketBTCUSD:
		return s.btc, nil
	case MarketETHUSD:
		return s.eth, nil
	}
	return nil, ErrUnsupportedMarket
}

// Book exposes a market's book for read-only inspection. Callers outside the
// supervisor goroutine must only use this after the supervisor has stopped.
func (s *EngineState) Book(market Market) (*OrderBook, error) {
	ab, err := s.bookFor(market)
	if err != nil {
		return nil, err
	}
	return ab.book, nil
}

// applyPlaceOrder is the place-order domain operation: reject unknown
// markets and reused ids, then hand the order to the matcher.
func applyPlaceOrder(s *EngineState, req *PlaceOrder) (*MatchResult, error) {
	ab, err := s.bookFor(req.Market)
	if err != nil {
		return nil, err
	}
	if _, dup := s.seenOrders[req.ID]; dup {
		return nil, ErrDuplicateOrderID
	}
	s.seenOrders[req.ID] = struct{}{}
	return ab.matcher.Submit(req.toOrder())
}

// applyCancelOrder is the cancel-order domain operation. Orders that were
// fully filled or never placed report ErrOrderNotFound.
func applyCancelOrder(s *EngineState, req *CancelOrder) error {
	ab, err := s.bookFor(req.Market)
	if err != nil {
		return err
	}
	if !ab.book.CancelOrder(req.ID) {
		return ErrOrderNotFound
	}
	return nil
}

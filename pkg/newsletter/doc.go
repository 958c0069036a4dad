// Package newsletter renders and delivers the daily issue.
//
// A Pipeline collects the day's content (optionally cached per date),
// archives the web version, fetches active subscribers and hands them to a
// BatchSender, which sends one message at a time with a fixed pause between
// deliveries:
//
//	templates, err := newsletter.Templates()
//	renderer := newsletter.NewRenderer(templates, cfg.Location())
//	m := mailer.New(sender, templates, mailerCfg)
//	batch := newsletter.NewBatchSender(m, renderer, cfg, log)
//	p := newsletter.NewPipeline(cfg, aggregator, store, batch,
//		newsletter.WithCache(c),
//		newsletter.WithLogger(log),
//	)
//	report, err := p.Run(ctx)
//
// Run returns an error only when the subscriber list cannot be read.
// Individual delivery failures are counted in the Report.
package newsletter

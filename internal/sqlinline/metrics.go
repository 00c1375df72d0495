package sqlinline

// The dashboard aggregates are deliberately independent single-value reads;
// see internal/metrics for the consistency contract.

const QMetricsUserCount = `--sql dd574dc7-8c2e-43a9-8a82-e6ecf780c1f5
select count(*) from users;
`

const QMetricsEventCount = `--sql 5e7b2e91-d9be-4dd9-855d-1dc88c7bfcdb
select count(*) from events;
`

const QMetricsUpcomingEventCount = `--sql fd35094d-8fbf-4cb7-a08c-137c266f2769
select count(*) from events where date >= current_date;
`

const QMetricsTotalDonations = `--sql ccf32383-3b92-46a3-891e-7fc91eb2d66b
select coalesce(sum(amount), 0) from donations;
`

const QMetricsMonthlyDonations = `--sql 04bb7465-099a-4229-891c-bc18af4ee21d
select coalesce(sum(amount), 0) from donations where created_at >= now() - interval '30 days';
`

const QMetricsMessageCount = `--sql 61803383-0b09-4492-b73a-0eea78c0b0f3
select count(*) from messages;
`

const QMetricsUnreadInboundCount = `--sql 43e57551-7628-4410-a7f3-8b0be85798b8
select count(*)
from messages m
join users u on u.id = m.sender_id
where u.role <> 'admin' and not m.read;
`

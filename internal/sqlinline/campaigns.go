package sqlinline

const QListCampaigns = `--sql 6e09ec80-e4f4-47d2-ad42-021355f14102
select id, title, description, goal, raised, donors, days_left, coalesce(category, ''), coalesce(image, ''), coalesce(organizer, ''), featured, urgent
from donation_campaigns
order by featured desc, urgent desc;
`

const QInsertCampaign = `--sql 21eba117-780f-4655-8271-f88df1845d37
insert into donation_campaigns (id, title, description, goal, raised, donors, days_left, category, image, organizer, featured, urgent)
values ($1::uuid, $2::text, $3::text, $4::double precision, 0, 0, $5::int, nullif($6::text, ''), nullif($7::text, ''), $8::text, $9::bool, $10::bool)
returning id;
`

const QSelectCampaign = `--sql 3124dded-53f6-4831-990d-ef60f6a1263b
select id
from donation_campaigns
where id = $1::uuid
limit 1;
`

const QInsertDonation = `--sql 4a72d71b-46e3-49d3-9658-238ef0cd9000
insert into donations (id, campaign_id, user_id, amount, created_at, receipt, status)
values ($1::uuid, $2::uuid, nullif($3::text, '')::uuid, $4::double precision, now(), $5::text, 'completed')
returning created_at;
`

const QApplyDonationToCampaign = `--sql e027a7f4-c704-4dbe-94bb-c517dfde3267
update donation_campaigns
set raised = raised + $1::double precision,
    donors = donors + 1
where id = $2::uuid;
`

const QAdminListDonations = `--sql d5d874db-faf8-4578-8ccd-e48fc5e26cfa
select d.id, d.amount, d.created_at, d.status, coalesce(d.receipt, ''),
       coalesce(dc.title, ''), coalesce(u.name, ''), coalesce(u.email, '')
from donations d
left join donation_campaigns dc on dc.id = d.campaign_id
left join users u on u.id = d.user_id
order by d.created_at desc;
`

package sqlinline

const QListEvents = `--sql 97f3c32b-eec1-4649-8254-cc6b7e3b852a
select id, title, description, date, coalesce(start_time, ''), coalesce(end_time, ''), coalesce(location, ''), coalesce(address, ''),
       coalesce(type, ''), coalesce(category, ''), coalesce(max_attendees, 0), current_attendees, price, coalesce(image, ''), coalesce(organizer, ''), featured
from events
order by date asc;
`

const QInsertEvent = `--sql 60ff7d1a-6800-421d-bf59-1001f59296a9
insert into events (id, title, description, date, start_time, end_time, location, address, type, category, max_attendees, current_attendees, price, image, organizer, featured)
values ($1::uuid, $2::text, $3::text, $4::date, nullif($5::text, ''), nullif($6::text, ''), nullif($7::text, ''), nullif($8::text, ''),
        nullif($9::text, ''), nullif($10::text, ''), nullif($11::int, 0), 0, $12::double precision, nullif($13::text, ''), $14::text, $15::bool)
returning id;
`

const QSelectEventForRegistration = `--sql e57e596a-a290-47c1-bc97-ed92e0d1c449
select id, coalesce(max_attendees, 0), current_attendees
from events
where id = $1::uuid
limit 1;
`

const QSelectRegistration = `--sql d940a07f-6fdd-47f3-90d9-1c332a43e38a
select 1
from event_registrations
where event_id = $1::uuid and user_id = $2::uuid
limit 1;
`

const QInsertRegistration = `--sql ab829305-372c-48c1-a77b-ab8c580c297e
insert into event_registrations (event_id, user_id)
values ($1::uuid, $2::uuid)
on conflict do nothing;
`

const QIncrementAttendees = `--sql 745a15e5-e832-464b-a9dc-36c0f855a15c
update events
set current_attendees = current_attendees + 1
where id = $1::uuid;
`
